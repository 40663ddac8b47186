package handler

import (
	"net/http"
	"strconv"

	"sweatshares/internal/api/v1/dto"
	"sweatshares/internal/middleware"
	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
)

type DashboardHandler struct {
	svc    service.DashboardService
	logger zerolog.Logger
}

func NewDashboardHandler(svc service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Get("/dashboard/stats", h.stats)
}

func (h *DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	days := defaultDashboardDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = min(d, maxDashboardDays)
	}

	stats, err := h.svc.Stats(r.Context(), userID, days)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load dashboard stats")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.DashboardStatsResponseDTO{
		Days:              days,
		Messages:          make([]dto.DailyMessageCountDTO, 0, len(stats.Messages)),
		SignatureRequests: make([]dto.StatusCountDTO, 0, len(stats.SignatureRequests)),
	}
	for _, c := range stats.Messages {
		resp.Messages = append(resp.Messages, dto.DailyMessageCountDTO{
			Day:      c.Day.Format("2006-01-02"),
			Sent:     c.Sent,
			Received: c.Received,
		})
	}
	for _, s := range stats.SignatureRequests {
		resp.SignatureRequests = append(resp.SignatureRequests, dto.StatusCountDTO{Status: s.Status, Count: s.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}
