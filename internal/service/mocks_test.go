package service

import (
	"context"
	"time"

	"sweatshares/internal/dropboxsign"
	"sweatshares/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSignatureRequestRepo struct {
	mock.Mock
}

func (m *MockSignatureRequestRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

func (m *MockSignatureRequestRepo) CountByStatusForUser(ctx context.Context, userID string) ([]model.StatusCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusCount), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	args := m.Called(ctx, topic, payload, attrs)
	return args.String(0), args.Error(1)
}

type MockDropboxSignClient struct {
	mock.Mock
}

func (m *MockDropboxSignClient) GetAccount(ctx context.Context) (*dropboxsign.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dropboxsign.Account), args.Error(1)
}

type MockDeadlineRepo struct {
	mock.Mock
}

func (m *MockDeadlineRepo) CheckApproachingDeadlines(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) GetListingWithProfile(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) CreateMessage(ctx context.Context, msg *model.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepo) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepo) GetConversation(ctx context.Context, a, b string, limit, offset int) ([]model.Message, error) {
	args := m.Called(ctx, a, b, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepo) MarkRead(ctx context.Context, id, receiverID string) (bool, error) {
	args := m.Called(ctx, id, receiverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepo) CreateAttachment(ctx context.Context, a *model.MessageAttachment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockMessageRepo) DailyCounts(ctx context.Context, userID string, since time.Time) ([]model.DailyMessageCount, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyMessageCount), args.Error(1)
}

type MockAttachmentStorage struct {
	mock.Mock
}

func (m *MockAttachmentStorage) PresignUpload(ctx context.Context, key, contentType string, size int64) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, size)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
