package handlers

import (
	"errors"
	"net/http"

	"beexpress/internal/apperr"
	"beexpress/internal/logx"
	"beexpress/internal/service/users"
)

// WebhookHandler accepts identity-provider callbacks over HTTP. The same
// events also arrive via the Kafka consumer; both paths are idempotent,
// so duplicates across transports are harmless.
type WebhookHandler struct {
	processor *users.Processor
	logger    logx.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(logger logx.Logger, p *users.Processor) *WebhookHandler {
	return &WebhookHandler{processor: p, logger: logger}
}

// Users handles POST /webhooks/users.
func (h *WebhookHandler) Users(w http.ResponseWriter, r *http.Request) {
	var req userEventRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	e := users.Event{
		Type:        req.Type,
		UserID:      req.Data.ID,
		Role:        req.Data.Role,
		PhoneNumber: req.Data.PhoneNumber,
		CreatedAt:   req.Data.CreatedAt,
	}

	err := h.processor.Handle(r.Context(), e)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "accepted"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid event payload")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
