package service

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrSelfMessage        = errors.New("cannot send a message to yourself")
	ErrEmptyMessage       = errors.New("message has no content or attachments")
	ErrNotMessageSender   = errors.New("only the sender can attach files to a message")
	ErrMissingSignatureID = errors.New("event is missing related_signature_id")
)
