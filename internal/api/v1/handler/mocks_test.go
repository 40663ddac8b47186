package handler_test

import (
	"context"
	"net/http"

	"sweatshares/internal/dropboxsign"
	"sweatshares/internal/middleware"
	"sweatshares/internal/model"
	"sweatshares/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) HandleEvent(ctx context.Context, event *dropboxsign.Event) (service.EventOutcome, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(service.EventOutcome), args.Error(1)
}

type MockDropboxSignService struct {
	mock.Mock
}

func (m *MockDropboxSignService) CheckQuota(ctx context.Context) (*service.QuotaReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuotaReport), args.Error(1)
}

func (m *MockDropboxSignService) TestConnection(ctx context.Context) (*service.ConnectionReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConnectionReport), args.Error(1)
}

type MockDeadlineService struct {
	mock.Mock
}

func (m *MockDeadlineService) CheckDeadlines(ctx context.Context, triggeredBy string) error {
	return m.Called(ctx, triggeredBy).Error(0)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, senderID, receiverID, content string, attachments []service.NewAttachment) (*service.SentMessage, error) {
	args := m.Called(ctx, senderID, receiverID, content, attachments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SentMessage), args.Error(1)
}

func (m *MockMessageService) Conversation(ctx context.Context, userID, otherID string, limit, offset int) ([]model.Message, error) {
	args := m.Called(ctx, userID, otherID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, messageID, userID string) error {
	return m.Called(ctx, messageID, userID).Error(0)
}

func (m *MockMessageService) AddAttachment(ctx context.Context, messageID, userID string, in service.NewAttachment) (*service.AttachmentUpload, error) {
	args := m.Called(ctx, messageID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttachmentUpload), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context, userID string, days int) (*service.DashboardStats, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

// fakeAuth stands in for middleware.AuthMiddleware: requests carrying
// X-Test-User are authenticated as that user, all others get 401.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-Test-User")
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), userID)))
	})
}

func passthrough(next http.Handler) http.Handler { return next }
