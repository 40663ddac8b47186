package dto

type DeadlineCheckResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
