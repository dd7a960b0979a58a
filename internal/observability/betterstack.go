package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/config"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const shipperQueueSize = 1024

// InitBetterStackLogger tees the logger to Better Stack. Lines at or above
// the configured level are queued and posted in JSON array batches; stdout
// output is unchanged.
func InitBetterStackLogger(cfg config.Config, base *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if base == nil {
		base = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		base.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return base, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	shipper := newLogShipper(endpoint, cfg.BetterStackToken, cfg.BetterStackTimeout, cfg.BetterStackBatchSize, cfg.BetterStackFlushInterval)
	shipCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(shipperEncoderConfig()),
		zapcore.AddSync(shipper),
		cfg.BetterStackMinLevel,
	)
	zapLogger := base.Zap().WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, shipCore)
	}))

	logger := logging.FromZap(zapLogger.With(
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.AppEnv),
	))
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"batch_size", shipper.batchSize,
	)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := shipper.Close(ctx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func shipperEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "dt",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// logShipper is a zapcore.WriteSyncer that batches encoded lines and posts
// them from a single goroutine. A full queue drops lines rather than block
// request handling.
type logShipper struct {
	endpoint   string
	token      string
	client     *http.Client
	batchSize  int
	flushEvery time.Duration

	mu      sync.RWMutex
	closed  bool
	queue   chan []byte
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

func newLogShipper(endpoint, token string, timeout time.Duration, batchSize int, flushEvery time.Duration) *logShipper {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if batchSize < 1 {
		batchSize = 50
	}
	if flushEvery <= 0 {
		flushEvery = 2 * time.Second
	}

	s := &logShipper{
		endpoint:   endpoint,
		token:      strings.TrimSpace(token),
		client:     &http.Client{Timeout: timeout},
		batchSize:  batchSize,
		flushEvery: flushEvery,
		queue:      make(chan []byte, shipperQueueSize),
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *logShipper) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses its buffer once Write returns.
	select {
	case s.queue <- append([]byte(nil), line...):
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full; dropped logs=%d\n", n)
		}
	}
	return len(p), nil
}

func (s *logShipper) Sync() error { return nil }

func (s *logShipper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.flushEvery)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.batchSize)
	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				s.flush(batch)
				return
			}
			batch = append(batch, line)
			if len(batch) >= s.batchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			s.flush(batch)
			batch = batch[:0]
		}
	}
}

func (s *logShipper) flush(batch [][]byte) {
	if len(batch) == 0 {
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_ = buf.WriteByte('[')
	for i, line := range batch {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.Write(line)
	}
	_ = buf.WriteByte(']')

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(buf.B))
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack create request failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack send batch failed: lines=%d error=%v\n", len(batch), err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "betterstack send batch got status=%d lines=%d\n", resp.StatusCode, len(batch))
	}
}

// Close stops accepting lines, flushes what is queued and waits for the
// last post or ctx, whichever comes first.
func (s *logShipper) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
