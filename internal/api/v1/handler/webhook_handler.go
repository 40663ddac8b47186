package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"sweatshares/internal/dropboxsign"
	"sweatshares/internal/metrics"
	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxWebhookBody      = 1 << 20
	maxWebhookMultipart = 10 << 20
)

// WebhookHandler receives Dropbox Sign account callbacks.
type WebhookHandler struct {
	signatureSvc service.SignatureService
	logger       zerolog.Logger
}

func NewWebhookHandler(signatureSvc service.SignatureService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{signatureSvc: signatureSvc, logger: logger}
}

// RegisterRoutes mounts the webhook behind limit, which guards the public
// endpoint.
func (h *WebhookHandler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/webhooks/dropbox-sign", h.handleDropboxSign)
}

func (h *WebhookHandler) handleDropboxSign(w http.ResponseWriter, r *http.Request) {
	callback, err := decodeCallback(w, r)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Unparseable Dropbox Sign callback")
		metrics.SignatureWebhookEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		writeError(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}
	if callback.Event == nil {
		metrics.SignatureWebhookEventsTotal.WithLabelValues("unknown", "missing_event").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	eventType := callback.Event.EventType
	outcome, err := h.signatureSvc.HandleEvent(r.Context(), callback.Event)
	if err != nil {
		switch {
		case errors.Is(err, dropboxsign.ErrInvalidEventHash):
			metrics.SignatureWebhookEventsTotal.WithLabelValues(eventType, "rejected").Inc()
			writeError(w, http.StatusUnauthorized, "invalid event hash")
		case errors.Is(err, service.ErrMissingSignatureID):
			metrics.SignatureWebhookEventsTotal.WithLabelValues(eventType, "malformed").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			metrics.SignatureWebhookEventsTotal.WithLabelValues(eventType, "error").Inc()
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	metrics.SignatureWebhookEventsTotal.WithLabelValues(eventType, string(outcome)).Inc()
	writeJSON(w, http.StatusOK, struct{}{})
}

// decodeCallback accepts the callback as a JSON body or, as Dropbox Sign
// sends it by default, as a multipart form with the JSON in the "json" field.
func decodeCallback(w http.ResponseWriter, r *http.Request) (*dropboxsign.Callback, error) {
	var raw []byte
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		r.Body = http.MaxBytesReader(w, r.Body, maxWebhookMultipart)
		if err := r.ParseMultipartForm(maxWebhookMultipart); err != nil {
			return nil, err
		}
		raw = []byte(r.FormValue("json"))
	case mediaType == "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		raw = []byte(r.PostFormValue("json"))
	default:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			return nil, err
		}
		raw = body
	}

	var cb dropboxsign.Callback
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, err
	}
	return &cb, nil
}
