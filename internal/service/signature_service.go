package service

import (
	"context"
	"encoding/json"
	"time"

	"sweatshares/internal/dropboxsign"
	"sweatshares/internal/model"
	"sweatshares/internal/pubsub"
	"sweatshares/internal/repository"

	"github.com/rs/zerolog"
)

// EventOutcome describes what HandleEvent did with a webhook event.
type EventOutcome string

const (
	OutcomeApplied EventOutcome = "applied"
	OutcomeIgnored EventOutcome = "ignored"
)

// SignatureSignedEvent is published after a signature request is marked signed.
type SignatureSignedEvent struct {
	SignatureRequestID string    `json:"signature_request_id"`
	Status             string    `json:"status"`
	SignedAt           time.Time `json:"signed_at"`
}

type SignatureService interface {
	// HandleEvent verifies event and applies it to the store. Only
	// signature_request_all_signed mutates state; every other event type is
	// acknowledged without a write.
	HandleEvent(ctx context.Context, event *dropboxsign.Event) (EventOutcome, error)
}

type signatureService struct {
	repo      repository.SignatureRequestRepository
	publisher pubsub.Publisher
	topic     string
	apiKey    string
	now       func() time.Time
	logger    zerolog.Logger
}

func NewSignatureService(repo repository.SignatureRequestRepository, publisher pubsub.Publisher, topic, apiKey string, logger zerolog.Logger) SignatureService {
	return &signatureService{
		repo:      repo,
		publisher: publisher,
		topic:     topic,
		apiKey:    apiKey,
		now:       time.Now,
		logger:    logger.With().Str("service", "SignatureService").Logger(),
	}
}

func (s *signatureService) HandleEvent(ctx context.Context, event *dropboxsign.Event) (EventOutcome, error) {
	if err := dropboxsign.VerifyEventHash(s.apiKey, event); err != nil {
		s.logger.Warn().Msg("Rejected Dropbox Sign event with invalid hash")
		return "", err
	}

	if event.EventType != dropboxsign.EventSignatureRequestAllSigned {
		s.logger.Debug().Str("event_type", event.EventType).Msg("Ignoring Dropbox Sign event")
		return OutcomeIgnored, nil
	}

	signatureID := event.EventMetadata.RelatedSignatureID
	if signatureID == "" {
		return "", ErrMissingSignatureID
	}

	signedAt := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, signatureID, model.SignatureStatusSigned, signedAt); err != nil {
		s.logger.Error().Err(err).Str("signature_request_id", signatureID).Msg("Failed to mark signature request signed")
		return "", err
	}
	s.logger.Info().Str("signature_request_id", signatureID).Msg("Signature request marked signed")

	s.publishSigned(ctx, SignatureSignedEvent{
		SignatureRequestID: signatureID,
		Status:             model.SignatureStatusSigned,
		SignedAt:           signedAt,
	})
	return OutcomeApplied, nil
}

// publishSigned is best effort; the row is already updated.
func (s *signatureService) publishSigned(ctx context.Context, evt SignatureSignedEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode signature signed event")
		return
	}
	attrs := map[string]string{"event_type": "signature_request.signed"}
	if _, err := s.publisher.Publish(ctx, s.topic, payload, attrs); err != nil {
		s.logger.Warn().Err(err).Str("signature_request_id", evt.SignatureRequestID).Msg("Failed to publish signature signed event")
	}
}
