package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/subscription"
)

type subscriptionRequest struct {
	Email string `json:"email" validate:"required,max=255"`
}

type subscribersResponse struct {
	Subscribers []subscription.Subscription `json:"subscribers"`
	Count       int                         `json:"count"`
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Subscribe")
	defer span.End()

	var req subscriptionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.subscriptionService.Subscribe(ctx, req.Email)
	if err != nil {
		h.logFailure(ctx, "subscribe failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Unsubscribe")
	defer span.End()

	var req subscriptionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.subscriptionService.Unsubscribe(ctx, req.Email)
	if err != nil {
		h.logFailure(ctx, "unsubscribe failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) CountSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CountSubscriptions")
	defer span.End()

	count, err := h.subscriptionService.Count(ctx)
	if err != nil {
		h.logFailure(ctx, "count subscriptions failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, count)
}

func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSubscribers")
	defer span.End()

	items, err := h.subscriptionService.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list subscribers failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, subscribersResponse{Subscribers: items, Count: len(items)})
}
