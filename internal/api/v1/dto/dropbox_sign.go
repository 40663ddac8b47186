package dto

type QuotasDTO struct {
	APISignatureRequestsLeft int  `json:"api_signature_requests_left"`
	DocumentsLeft            *int `json:"documents_left"`
	TemplatesLeft            *int `json:"templates_left"`
	SMSVerificationsLeft     *int `json:"sms_verifications_left"`
}

type QuotaResponseDTO struct {
	Success         bool      `json:"success"`
	Quotas          QuotasDTO `json:"quotas"`
	AccountType     string    `json:"account_type"`
	CanSendRequests bool      `json:"can_send_requests"`
	Message         string    `json:"message"`
}

type ConnectionTestResponseDTO struct {
	Success     bool   `json:"success"`
	AccountType string `json:"account_type"`
	Message     string `json:"message"`
}

// ProviderErrorDTO is the failure envelope shared by the Dropbox Sign utility routes.
type ProviderErrorDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
