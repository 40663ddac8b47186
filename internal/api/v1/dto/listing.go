package dto

import "time"

type ListingResponseDTO struct {
	ID                string              `json:"id"`
	ProfileID         string              `json:"profile_id"`
	Title             string              `json:"title"`
	Description       *string             `json:"description"`
	ListingType       *string             `json:"listing_type"`
	Sector            *string             `json:"sector"`
	Location          *string             `json:"location"`
	CompensationType  *string             `json:"compensation_type"`
	CompensationValue *string             `json:"compensation_value"`
	Amount            *string             `json:"amount"`
	CreatedAt         time.Time           `json:"created_at"`
	Profile           *ProfileResponseDTO `json:"profile"`
}
