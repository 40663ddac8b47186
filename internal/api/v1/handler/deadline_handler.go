package handler

import (
	"net/http"

	"sweatshares/internal/api/v1/dto"
	"sweatshares/internal/middleware"
	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type DeadlineHandler struct {
	svc    service.DeadlineService
	logger zerolog.Logger
}

func NewDeadlineHandler(svc service.DeadlineService, logger zerolog.Logger) *DeadlineHandler {
	return &DeadlineHandler{svc: svc, logger: logger}
}

func (h *DeadlineHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Post("/deadlines/check", h.check)
}

func (h *DeadlineHandler) check(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.svc.CheckDeadlines(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.DeadlineCheckResponseDTO{
		Success: true,
		Message: "Deadline check completed successfully",
	})
}
