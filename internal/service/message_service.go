package service

import (
	"context"
	"strings"
	"time"

	"sweatshares/internal/model"
	"sweatshares/internal/repository"
	"sweatshares/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AttachmentUpload is a recorded attachment plus the URL the client PUTs
// the file to.
type AttachmentUpload struct {
	Attachment model.MessageAttachment
	UploadURL  string
	ExpiresAt  time.Time
}

type NewAttachment struct {
	FileName    string
	ContentType string
	FileSize    int64
}

// SentMessage is a created message plus upload URLs for the attachments
// declared with it, in request order.
type SentMessage struct {
	Message model.Message
	Uploads []AttachmentUpload
}

type MessageService interface {
	Send(ctx context.Context, senderID, receiverID, content string, attachments []NewAttachment) (*SentMessage, error)
	Conversation(ctx context.Context, userID, otherID string, limit, offset int) ([]model.Message, error)
	MarkRead(ctx context.Context, messageID, userID string) error
	AddAttachment(ctx context.Context, messageID, userID string, in NewAttachment) (*AttachmentUpload, error)
}

type messageService struct {
	repo    repository.MessageRepository
	storage storage.AttachmentStorage
	logger  zerolog.Logger
}

func NewMessageService(repo repository.MessageRepository, storage storage.AttachmentStorage, logger zerolog.Logger) MessageService {
	return &messageService{
		repo:    repo,
		storage: storage,
		logger:  logger.With().Str("service", "MessageService").Logger(),
	}
}

// Send stores a message from senderID to receiverID. A message needs text,
// attachments, or both; each declared attachment is recorded and gets its
// own upload URL.
func (s *messageService) Send(ctx context.Context, senderID, receiverID, content string, attachments []NewAttachment) (*SentMessage, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" && len(attachments) == 0 {
		return nil, ErrEmptyMessage
	}
	m := model.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		Attachments: []model.MessageAttachment{},
	}
	if err := s.repo.CreateMessage(ctx, &m); err != nil {
		return nil, err
	}

	sent := &SentMessage{Message: m, Uploads: make([]AttachmentUpload, 0, len(attachments))}
	for _, in := range attachments {
		up, err := s.attach(ctx, m.ID, in)
		if err != nil {
			return nil, err
		}
		sent.Message.Attachments = append(sent.Message.Attachments, up.Attachment)
		sent.Uploads = append(sent.Uploads, *up)
	}
	return sent, nil
}

func (s *messageService) Conversation(ctx context.Context, userID, otherID string, limit, offset int) ([]model.Message, error) {
	if _, err := uuid.Parse(otherID); err != nil {
		return []model.Message{}, nil
	}
	msgs, err := s.repo.GetConversation(ctx, userID, otherID, limit, offset)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return msgs, nil
}

func (s *messageService) MarkRead(ctx context.Context, messageID, userID string) error {
	if _, err := uuid.Parse(messageID); err != nil {
		return ErrMessageNotFound
	}
	ok, err := s.repo.MarkRead(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMessageNotFound
	}
	return nil
}

func (s *messageService) AddAttachment(ctx context.Context, messageID, userID string, in NewAttachment) (*AttachmentUpload, error) {
	if _, err := uuid.Parse(messageID); err != nil {
		return nil, ErrMessageNotFound
	}
	msg, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return nil, ErrNotMessageSender
	}
	return s.attach(ctx, messageID, in)
}

func (s *messageService) attach(ctx context.Context, messageID string, in NewAttachment) (*AttachmentUpload, error) {
	a := model.MessageAttachment{
		ID:          uuid.NewString(),
		MessageID:   messageID,
		FileName:    in.FileName,
		FileSize:    in.FileSize,
		ContentType: in.ContentType,
	}
	a.FilePath = storage.AttachmentKey(messageID, a.ID, in.FileName)

	url, expiresAt, err := s.storage.PresignUpload(ctx, a.FilePath, a.ContentType, a.FileSize)
	if err != nil {
		s.logger.Error().Err(err).Str("message_id", messageID).Msg("Failed to presign attachment upload")
		return nil, err
	}
	if err := s.repo.CreateAttachment(ctx, &a); err != nil {
		return nil, err
	}
	return &AttachmentUpload{Attachment: a, UploadURL: url, ExpiresAt: expiresAt}, nil
}
