package dto

type ErrorResponseDTO struct {
	Error string `json:"error"`
}
