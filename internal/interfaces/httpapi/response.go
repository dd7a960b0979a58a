package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/resilience"
	"github.com/riskibarqy/nfl-trends-api/internal/usecase"
)

const (
	internalErrorDetail    = "Internal server error"
	unavailableErrorDetail = "Service temporarily unavailable"
)

// pageResponse is the envelope of every filtered collection.
type pageResponse[T any] struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
	Results    []T `json:"results"`
}

func newPageResponse[T any](page usecase.Page[T]) pageResponse[T] {
	results := page.Items
	if results == nil {
		results = []T{}
	}
	return pageResponse[T]{
		Limit:      page.Limit,
		Offset:     page.Offset,
		Count:      len(results),
		TotalCount: page.Total,
		Results:    results,
	}
}

// errorResponse carries either a message or, for 422, every field violation.
type errorResponse struct {
	Detail any `json:"detail"`
}

type mappedError struct {
	HTTPStatus int
	Sentinel   error
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	annotateResponse(ctx, mapped.HTTPStatus, err)
	switch {
	case mapped.HTTPStatus == http.StatusUnprocessableEntity:
		var verrs filter.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{Detail: []filter.ValidationError(verrs)})
			return
		}
	case mapped.HTTPStatus == http.StatusServiceUnavailable:
		writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{Detail: unavailableErrorDetail})
		return
	case mapped.HTTPStatus >= http.StatusInternalServerError:
		writeInternalError(ctx, w)
		return
	}

	writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{Detail: errorDetail(err, mapped.Sentinel)})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Detail: internalErrorDetail})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Sentinel: usecase.ErrValidation}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Sentinel: usecase.ErrInvalidInput}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Sentinel: usecase.ErrNotFound}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Sentinel: usecase.ErrConflict}
	case errors.Is(err, usecase.ErrDependencyUnavailable),
		errors.Is(err, resilience.ErrCircuitOpen):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Sentinel: usecase.ErrDependencyUnavailable}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError}
	}
}

// errorDetail drops the sentinel prefix so clients see the message the
// usecase wrote, e.g. "conflict: This email ..." becomes "This email ...".
func errorDetail(err, sentinel error) string {
	msg := err.Error()
	if sentinel == nil {
		return msg
	}
	if detail, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && detail != "" {
		return detail
	}
	return msg
}
