package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/resilience"
	"github.com/riskibarqy/nfl-trends-api/internal/usecase"
)

// maxBodyBytes bounds filter payloads; the initial weekly filter is the
// largest legitimate body and stays far below it.
const maxBodyBytes = 1 << 20

// BreakerReporter exposes the store circuit breaker for /healthz.
type BreakerReporter interface {
	Breaker() (resilience.BreakerSnapshot, bool)
}

type Handler struct {
	gameService         *usecase.GameService
	upcomingGameService *usecase.UpcomingGameService
	trendService        *usecase.TrendService
	weeklyTrendService  *usecase.WeeklyTrendService
	gameTrendService    *usecase.GameTrendService
	tableRegistry       *usecase.TableRegistry
	cacheService        *usecase.CacheService
	subscriptionService *usecase.SubscriptionService
	breaker             BreakerReporter
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	upcomingGameService *usecase.UpcomingGameService,
	trendService *usecase.TrendService,
	weeklyTrendService *usecase.WeeklyTrendService,
	gameTrendService *usecase.GameTrendService,
	tableRegistry *usecase.TableRegistry,
	cacheService *usecase.CacheService,
	subscriptionService *usecase.SubscriptionService,
	breaker BreakerReporter,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:         gameService,
		upcomingGameService: upcomingGameService,
		trendService:        trendService,
		weeklyTrendService:  weeklyTrendService,
		gameTrendService:    gameTrendService,
		tableRegistry:       tableRegistry,
		cacheService:        cacheService,
		subscriptionService: subscriptionService,
		breaker:             breaker,
		logger:              logger,
		validator:           validator.New(validator.WithRequiredStructEnabled()),
	}
}

type healthResponse struct {
	Status  string                      `json:"status"`
	Breaker *resilience.BreakerSnapshot `json:"database_breaker,omitempty"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	resp := healthResponse{Status: "ok"}
	if h.breaker != nil {
		if snap, ok := h.breaker.Breaker(); ok {
			resp.Breaker = &snap
			if snap.State == resilience.CircuitStateOpen {
				resp.Status = "degraded"
			}
		}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody strictly decodes a JSON body into dst. An empty body leaves dst
// at its zero value, which every filter treats as "no criteria".
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := jsoniter.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: invalid JSON payload: trailing data after object", usecase.ErrInvalidInput)
	}
	return nil
}

// decodeFilter decodes a filter body. Shape errors such as unknown fields or
// wrong value types are reported like field violations.
func decodeFilter(w http.ResponseWriter, r *http.Request, dst any) error {
	err := decodeBody(w, r, dst)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", usecase.ErrValidation, filter.ValidationErrors{{
		Field:      "body",
		Constraint: strings.TrimPrefix(err.Error(), usecase.ErrInvalidInput.Error()+": "),
	}})
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, args...)
		return
	}
	h.logger.ErrorContext(ctx, msg, args...)
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: query parameter %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
