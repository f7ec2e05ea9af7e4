package handlers

import (
	"errors"
	"net/http"

	"beexpress/internal/apperr"
	"beexpress/internal/http/middleware"
	"beexpress/internal/logx"
)

// ProfileHandler exposes the caller's role assignment.
type ProfileHandler struct {
	usecase rolesUsecase
	logger  logx.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(logger logx.Logger, uc rolesUsecase) *ProfileHandler {
	return &ProfileHandler{usecase: uc, logger: logger}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())

	a, err := h.usecase.Get(r.Context(), caller)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, assignmentToResponse(a))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "profile not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
