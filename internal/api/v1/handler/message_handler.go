package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sweatshares/internal/api/v1/dto"
	"sweatshares/internal/middleware"
	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	defaultConversationLimit = 50
	maxConversationLimit     = 100
)

type MessageHandler struct {
	svc      service.MessageService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewMessageHandler(svc service.MessageService, v *validator.Validate, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 messaging routes; all of them require a session.
func (h *MessageHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Post("/messages", h.send)
		r.Get("/messages/{userId}", h.conversation)
		r.Patch("/messages/{id}/read", h.markRead)
		r.Post("/messages/{id}/attachments", h.addAttachment)
	})
}

func (h *MessageHandler) send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.MessageCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	var attachments []service.NewAttachment
	for _, a := range req.Attachments {
		attachments = append(attachments, service.NewAttachment{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			FileSize:    a.FileSize,
		})
	}

	sent, err := h.svc.Send(r.Context(), userID, req.ReceiverID, req.Content, attachments)
	if err != nil {
		if errors.Is(err, service.ErrSelfMessage) || errors.Is(err, service.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to send message")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := dto.MessageSendResponseDTO{
		MessageResponseDTO: toMessageDTO(sent.Message),
		Uploads:            make([]dto.AttachmentUploadResponseDTO, 0, len(sent.Uploads)),
	}
	for _, u := range sent.Uploads {
		resp.Uploads = append(resp.Uploads, toUploadDTO(u))
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *MessageHandler) conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := defaultConversationLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxConversationLimit)
	}
	offset := 0
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o > 0 {
		offset = o
	}

	msgs, err := h.svc.Conversation(r.Context(), userID, chi.URLParam(r, "userId"), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch conversation")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]dto.MessageResponseDTO, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, toMessageDTO(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *MessageHandler) markRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.svc.MarkRead(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to mark message read")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) addAttachment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.AttachmentCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	upload, err := h.svc.AddAttachment(r.Context(), chi.URLParam(r, "id"), userID, service.NewAttachment{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMessageSender):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			h.logger.Error().Err(err).Msg("Failed to add attachment")
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUploadDTO(*upload))
}
