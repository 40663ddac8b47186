package dropboxsign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

const (
	EventSignatureRequestAllSigned = "signature_request_all_signed"
	EventCallbackTest              = "callback_test"
)

var ErrInvalidEventHash = errors.New("invalid event hash")

type EventMetadata struct {
	RelatedSignatureID   string `json:"related_signature_id"`
	ReportedForAccountID string `json:"reported_for_account_id"`
	ReportedForAppID     string `json:"reported_for_app_id"`
	EventMessage         string `json:"event_message"`
}

type Event struct {
	EventType     string        `json:"event_type"`
	EventTime     string        `json:"event_time"`
	EventHash     string        `json:"event_hash"`
	EventMetadata EventMetadata `json:"event_metadata"`
}

// Callback is the body Dropbox Sign posts to the account callback URL.
type Callback struct {
	Event            *Event          `json:"event"`
	SignatureRequest json.RawMessage `json:"signature_request,omitempty"`
}

// ComputeEventHash returns hex(HMAC-SHA256(apiKey, event_time + event_type)).
func ComputeEventHash(apiKey, eventTime, eventType string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(eventTime + eventType))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyEventHash checks that e was produced by the account owning apiKey.
func VerifyEventHash(apiKey string, e *Event) error {
	if apiKey == "" || e == nil || e.EventHash == "" {
		return ErrInvalidEventHash
	}
	want := ComputeEventHash(apiKey, e.EventTime, e.EventType)
	if !hmac.Equal([]byte(want), []byte(e.EventHash)) {
		return ErrInvalidEventHash
	}
	return nil
}
