package dto

import "time"

type ProfileResponseDTO struct {
	ID               string    `json:"id"`
	FullName         *string   `json:"full_name"`
	ProfessionalRole *string   `json:"professional_role"`
	Bio              *string   `json:"bio"`
	Country          *string   `json:"country"`
	AvatarURL        *string   `json:"avatar_url"`
	Skills           []string  `json:"skills"`
	CreatedAt        time.Time `json:"created_at"`
}
