package handler

import (
	"errors"
	"net/http"

	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ListingHandler struct {
	svc    service.ListingService
	logger zerolog.Logger
}

func NewListingHandler(svc service.ListingService, logger zerolog.Logger) *ListingHandler {
	return &ListingHandler{svc: svc, logger: logger}
}

func (h *ListingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/listings/{id}", h.getListing)
}

func (h *ListingHandler) getListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to fetch listing")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toListingDTO(listing))
}
