package handler

import (
	"errors"
	"net/http"

	"sweatshares/internal/middleware"
	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	svc    service.ProfileService
	logger zerolog.Logger
}

func NewProfileHandler(svc service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Get("/profiles/me", h.getMe)
	r.Get("/profiles/{id}", h.getProfile)
}

func (h *ProfileHandler) getMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.writeProfile(w, r, userID)
}

func (h *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, chi.URLParam(r, "id"))
}

func (h *ProfileHandler) writeProfile(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("profile_id", id).Msg("Failed to fetch profile")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(p))
}
