package web

import (
	"bytes"
	"errors"
	"net/http"

	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ListingPage renders the shareable listing detail page.
type ListingPage struct {
	svc      service.ListingService
	renderer Renderer
	logger   zerolog.Logger
}

func NewListingPage(svc service.ListingService, renderer Renderer, logger zerolog.Logger) *ListingPage {
	return &ListingPage{svc: svc, renderer: renderer, logger: logger}
}

func (p *ListingPage) RegisterRoutes(r chi.Router) {
	r.Get("/listings/{id}", p.show)
}

func (p *ListingPage) show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := p.svc.GetListing(r.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrListingNotFound) {
			p.logger.Error().Err(err).Str("listing_id", id).Msg("Failed to fetch listing for page")
		}
		p.notFound(w)
		return
	}

	// Render into a buffer so a template error never leaves a half-written page.
	var buf bytes.Buffer
	if err := p.renderer.RenderListing(&buf, listing); err != nil {
		p.logger.Error().Err(err).Str("listing_id", id).Msg("Failed to render listing page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (p *ListingPage) notFound(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := p.renderer.RenderNotFound(&buf); err != nil {
		p.logger.Error().Err(err).Msg("Failed to render not found page")
		http.Error(w, "Listing not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = buf.WriteTo(w)
}
