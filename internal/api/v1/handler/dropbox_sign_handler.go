package handler

import (
	"net/http"

	"sweatshares/internal/api/v1/dto"
	"sweatshares/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DropboxSignHandler exposes provider account checks for operators.
type DropboxSignHandler struct {
	svc    service.DropboxSignService
	logger zerolog.Logger
}

func NewDropboxSignHandler(svc service.DropboxSignService, logger zerolog.Logger) *DropboxSignHandler {
	return &DropboxSignHandler{svc: svc, logger: logger}
}

func (h *DropboxSignHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dropbox-sign/quota", h.quota)
	r.Get("/dropbox-sign/test", h.test)
}

func (h *DropboxSignHandler) quota(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.CheckQuota(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to check Dropbox Sign quota")
		writeJSON(w, http.StatusInternalServerError, dto.ProviderErrorDTO{
			Success: false,
			Message: "Failed to check Dropbox Sign quota",
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.QuotaResponseDTO{
		Success: true,
		Quotas: dto.QuotasDTO{
			APISignatureRequestsLeft: report.Quotas.APISignatureRequestsLeft,
			DocumentsLeft:            report.Quotas.DocumentsLeft,
			TemplatesLeft:            report.Quotas.TemplatesLeft,
			SMSVerificationsLeft:     report.Quotas.SMSVerificationsLeft,
		},
		AccountType:     report.AccountType,
		CanSendRequests: report.CanSendRequests,
		Message:         report.Message,
	})
}

func (h *DropboxSignHandler) test(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.TestConnection(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Dropbox Sign connection test failed")
		writeJSON(w, http.StatusInternalServerError, dto.ProviderErrorDTO{
			Success: false,
			Message: "Failed to connect to Dropbox Sign",
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.ConnectionTestResponseDTO{
		Success:     true,
		AccountType: report.AccountType,
		Message:     report.Message,
	})
}
