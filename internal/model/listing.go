package model

import "time"

// Listing is a marketplace post. Profile is populated from the owning
// profiles row at read time.
type Listing struct {
	ID                string    `db:"id" json:"id"`
	ProfileID         string    `db:"profile_id" json:"profile_id"`
	Title             string    `db:"title" json:"title"`
	Description       *string   `db:"description" json:"description"`
	ListingType       *string   `db:"listing_type" json:"listing_type"`
	Sector            *string   `db:"sector" json:"sector"`
	Location          *string   `db:"location" json:"location"`
	CompensationType  *string   `db:"compensation_type" json:"compensation_type"`
	CompensationValue *string   `db:"compensation_value" json:"compensation_value"`
	Amount            *string   `db:"amount" json:"amount"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	Profile           *Profile  `json:"profile"`
}
