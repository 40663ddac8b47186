package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"sweatshares/internal/dropboxsign"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func signedEvent(eventType, signatureID string) *dropboxsign.Event {
	e := &dropboxsign.Event{
		EventType:     eventType,
		EventTime:     "1760000000",
		EventMetadata: dropboxsign.EventMetadata{RelatedSignatureID: signatureID},
	}
	e.EventHash = dropboxsign.ComputeEventHash(testAPIKey, e.EventTime, e.EventType)
	return e
}

func newTestSignatureService(repo *MockSignatureRequestRepo, pub *MockPublisher, now time.Time) *signatureService {
	svc := NewSignatureService(repo, pub, "signature-events", testAPIKey, zerolog.Nop()).(*signatureService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestHandleEvent_AllSignedUpdatesOnce(t *testing.T) {
	repo := new(MockSignatureRequestRepo)
	pub := new(MockPublisher)
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	svc := newTestSignatureService(repo, pub, now)

	repo.On("UpdateStatus", mock.Anything, "fa5c9a1b", "signed", now).Return(nil).Once()
	pub.On("Publish", mock.Anything, "signature-events", mock.MatchedBy(func(p []byte) bool {
		var evt SignatureSignedEvent
		return json.Unmarshal(p, &evt) == nil && evt.SignatureRequestID == "fa5c9a1b" && evt.SignedAt.Equal(now)
	}), map[string]string{"event_type": "signature_request.signed"}).Return("msg-1", nil).Once()

	outcome, err := svc.HandleEvent(context.Background(), signedEvent(dropboxsign.EventSignatureRequestAllSigned, "fa5c9a1b"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	repo.AssertNumberOfCalls(t, "UpdateStatus", 1)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestHandleEvent_OtherTypesDoNotWrite(t *testing.T) {
	for _, eventType := range []string{"signature_request_sent", "signature_request_viewed", "signature_request_signed", dropboxsign.EventCallbackTest} {
		t.Run(eventType, func(t *testing.T) {
			repo := new(MockSignatureRequestRepo)
			pub := new(MockPublisher)
			svc := newTestSignatureService(repo, pub, time.Now())

			outcome, err := svc.HandleEvent(context.Background(), signedEvent(eventType, "fa5c9a1b"))
			require.NoError(t, err)
			assert.Equal(t, OutcomeIgnored, outcome)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleEvent_BadHashDoesNotWrite(t *testing.T) {
	repo := new(MockSignatureRequestRepo)
	svc := newTestSignatureService(repo, new(MockPublisher), time.Now())

	e := signedEvent(dropboxsign.EventSignatureRequestAllSigned, "fa5c9a1b")
	e.EventHash = "deadbeef"

	_, err := svc.HandleEvent(context.Background(), e)
	assert.ErrorIs(t, err, dropboxsign.ErrInvalidEventHash)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleEvent_MissingSignatureID(t *testing.T) {
	repo := new(MockSignatureRequestRepo)
	svc := newTestSignatureService(repo, new(MockPublisher), time.Now())

	_, err := svc.HandleEvent(context.Background(), signedEvent(dropboxsign.EventSignatureRequestAllSigned, ""))
	assert.ErrorIs(t, err, ErrMissingSignatureID)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleEvent_StoreError(t *testing.T) {
	repo := new(MockSignatureRequestRepo)
	pub := new(MockPublisher)
	svc := newTestSignatureService(repo, pub, time.Now())
	repo.On("UpdateStatus", mock.Anything, "fa5c9a1b", "signed", mock.Anything).Return(errors.New("db down"))

	_, err := svc.HandleEvent(context.Background(), signedEvent(dropboxsign.EventSignatureRequestAllSigned, "fa5c9a1b"))
	assert.EqualError(t, err, "db down")
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleEvent_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(MockSignatureRequestRepo)
	pub := new(MockPublisher)
	svc := newTestSignatureService(repo, pub, time.Now())
	repo.On("UpdateStatus", mock.Anything, "fa5c9a1b", "signed", mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("pubsub unavailable"))

	outcome, err := svc.HandleEvent(context.Background(), signedEvent(dropboxsign.EventSignatureRequestAllSigned, "fa5c9a1b"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
}
