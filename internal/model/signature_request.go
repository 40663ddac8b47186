package model

import "time"

const SignatureStatusSigned = "signed"

// SignatureRequest mirrors a Dropbox Sign signature request tracked by the app.
// Status is free text; the webhook only ever writes SignatureStatusSigned.
type SignatureRequest struct {
	SignatureRequestID string    `db:"signature_request_id" json:"signature_request_id"`
	ListingID          *string   `db:"listing_id" json:"listing_id"`
	SenderID           *string   `db:"sender_id" json:"sender_id"`
	SignerID           *string   `db:"signer_id" json:"signer_id"`
	Title              *string   `db:"title" json:"title"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
