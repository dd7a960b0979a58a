package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger is a key/value front end over zap. Fields bound with With are kept
// so the mirror sees the same attributes as the zap core.
type Logger struct {
	zap    *zap.Logger
	bound  []any
	synced *atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

// MirrorFunc receives every emitted record in addition to the zap core.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the process-wide log mirror. Nil disables mirroring.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

type contextFieldsKey struct{}

// ContextWith returns a context whose log calls carry args in addition to
// their own. Repeated calls accumulate.
func ContextWith(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := contextFields(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, contextFieldsKey{}, merged)
}

func contextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextFieldsKey{}).([]any)
	return fields
}

// ContextValue returns the value bound to key by ContextWith.
func ContextValue(ctx context.Context, key string) (any, bool) {
	fields := contextFields(ctx)
	for i := len(fields) - 2; i >= 0; i -= 2 {
		if k, ok := fields[i].(string); ok && k == key {
			return fields[i+1], true
		}
	}
	return nil, false
}

func init() {
	defaultLogger.Store(NewNop())
}

func NewJSON(level Level) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(os.Stdout), level)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z, synced: new(atomic.Bool)}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

// Sync flushes the core once; children created with With share the flag.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if l.synced.CompareAndSwap(false, true) {
		return l.zap.Sync()
	}
	return nil
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return NewNop().With(args...)
	}
	bound := make([]any, 0, len(l.bound)+len(args))
	bound = append(bound, l.bound...)
	bound = append(bound, args...)
	return &Logger{zap: l.zap.With(zapFields(args)...), bound: bound, synced: l.synced}
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(context.Background(), LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelError, msg, args)
}

func (l *Logger) emit(ctx context.Context, level Level, msg string, args []any) {
	logger := l
	if logger == nil {
		logger = Default()
	}
	ce := logger.zap.Check(level, msg)
	if ce == nil {
		return
	}

	if scoped := contextFields(ctx); len(scoped) > 0 {
		args = append(append(make([]any, 0, len(scoped)+len(args)), scoped...), args...)
	}
	fields := zapFields(args)
	fields = append(fields, traceFields(ctx)...)
	ce.Write(fields...)

	if fn := mirror.Load(); fn != nil {
		if len(logger.bound) > 0 {
			args = append(append(make([]any, 0, len(logger.bound)+len(args)), logger.bound...), args...)
		}
		(*fn)(ctx, level, msg, args...)
	}
}

func traceFields(ctx context.Context) []zap.Field {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.Stringer("trace_id", spanCtx.TraceID()),
		zap.Stringer("span_id", spanCtx.SpanID()),
	}
}

// zapFields converts alternating key/value args. A non-string key becomes
// "arg" and a dangling key gets a nil value.
func zapFields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}
		switch v := value.(type) {
		case error:
			out = append(out, zap.NamedError(key, v))
		case zap.Field:
			out = append(out, v)
		default:
			out = append(out, zap.Any(key, v))
		}
	}
	return out
}
