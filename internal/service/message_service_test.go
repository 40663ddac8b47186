package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sweatshares/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	alice     = "11111111-1111-4111-8111-111111111111"
	bob       = "22222222-2222-4222-8222-222222222222"
	messageID = "33333333-3333-4333-8333-333333333333"
)

func TestSend(t *testing.T) {
	repo := new(MockMessageRepo)
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *model.Message) bool {
		return m.SenderID == alice && m.ReceiverID == bob && m.Content == "hello" && m.ID != ""
	})).Return(nil)

	sent, err := NewMessageService(repo, new(MockAttachmentStorage), zerolog.Nop()).Send(context.Background(), alice, bob, "  hello ", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", sent.Message.Content)
	assert.NotNil(t, sent.Message.Attachments)
	assert.Empty(t, sent.Uploads)
}

func TestSend_AttachmentOnly(t *testing.T) {
	repo := new(MockMessageRepo)
	store := new(MockAttachmentStorage)
	expires := time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC)

	var created *model.Message
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *model.Message) bool {
		created = m
		return m.Content == ""
	})).Return(nil)
	store.On("PresignUpload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, "/cap-table.xlsx")
	}), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", int64(4096)).
		Return("https://storage.example/upload", expires, nil)
	repo.On("CreateAttachment", mock.Anything, mock.AnythingOfType("*model.MessageAttachment")).Return(nil)

	sent, err := NewMessageService(repo, store, zerolog.Nop()).Send(context.Background(), alice, bob, "  ", []NewAttachment{{
		FileName:    "cap-table.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FileSize:    4096,
	}})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, sent.Message.ID)
	require.Len(t, sent.Uploads, 1)
	require.Len(t, sent.Message.Attachments, 1)
	assert.Equal(t, "https://storage.example/upload", sent.Uploads[0].UploadURL)
	assert.Equal(t, created.ID, sent.Uploads[0].Attachment.MessageID)
	assert.True(t, strings.HasPrefix(sent.Message.Attachments[0].FilePath, "messages/"+created.ID+"/"))
	repo.AssertNumberOfCalls(t, "CreateAttachment", 1)
}

func TestSend_Rejects(t *testing.T) {
	repo := new(MockMessageRepo)
	svc := NewMessageService(repo, new(MockAttachmentStorage), zerolog.Nop())

	_, err := svc.Send(context.Background(), alice, alice, "hi me", nil)
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(context.Background(), alice, bob, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestConversation(t *testing.T) {
	repo := new(MockMessageRepo)
	repo.On("GetConversation", mock.Anything, alice, bob, 50, 0).Return(nil, nil)
	svc := NewMessageService(repo, new(MockAttachmentStorage), zerolog.Nop())

	msgs, err := svc.Conversation(context.Background(), alice, bob, 50, 0)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	msgs, err = svc.Conversation(context.Background(), alice, "bogus", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	repo.AssertNumberOfCalls(t, "GetConversation", 1)
}

func TestMarkRead(t *testing.T) {
	repo := new(MockMessageRepo)
	repo.On("MarkRead", mock.Anything, messageID, bob).Return(true, nil)
	repo.On("MarkRead", mock.Anything, messageID, alice).Return(false, nil)
	svc := NewMessageService(repo, new(MockAttachmentStorage), zerolog.Nop())

	assert.NoError(t, svc.MarkRead(context.Background(), messageID, bob))
	assert.ErrorIs(t, svc.MarkRead(context.Background(), messageID, alice), ErrMessageNotFound)
	assert.ErrorIs(t, svc.MarkRead(context.Background(), "x", bob), ErrMessageNotFound)
}

func TestAddAttachment(t *testing.T) {
	repo := new(MockMessageRepo)
	store := new(MockAttachmentStorage)
	expires := time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC)

	repo.On("GetMessageByID", mock.Anything, messageID).Return(&model.Message{ID: messageID, SenderID: alice, ReceiverID: bob}, nil)
	store.On("PresignUpload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "messages/"+messageID+"/") && strings.HasSuffix(key, "/term-sheet.pdf")
	}), "application/pdf", int64(2048)).Return("https://storage.example/upload", expires, nil)
	repo.On("CreateAttachment", mock.Anything, mock.AnythingOfType("*model.MessageAttachment")).Return(nil)

	up, err := NewMessageService(repo, store, zerolog.Nop()).AddAttachment(context.Background(), messageID, alice, NewAttachment{
		FileName:    "term-sheet.pdf",
		ContentType: "application/pdf",
		FileSize:    2048,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/upload", up.UploadURL)
	assert.Equal(t, expires, up.ExpiresAt)
	assert.Equal(t, int64(2048), up.Attachment.FileSize)
	assert.Equal(t, messageID, up.Attachment.MessageID)
}

func TestAddAttachment_OnlySender(t *testing.T) {
	repo := new(MockMessageRepo)
	store := new(MockAttachmentStorage)
	repo.On("GetMessageByID", mock.Anything, messageID).Return(&model.Message{ID: messageID, SenderID: alice, ReceiverID: bob}, nil)

	_, err := NewMessageService(repo, store, zerolog.Nop()).AddAttachment(context.Background(), messageID, bob, NewAttachment{FileName: "a.txt"})
	assert.ErrorIs(t, err, ErrNotMessageSender)
	store.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateAttachment", mock.Anything, mock.Anything)
}

func TestAddAttachment_PresignError(t *testing.T) {
	repo := new(MockMessageRepo)
	store := new(MockAttachmentStorage)
	repo.On("GetMessageByID", mock.Anything, messageID).Return(&model.Message{ID: messageID, SenderID: alice}, nil)
	store.On("PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", time.Time{}, errors.New("no credentials"))

	_, err := NewMessageService(repo, store, zerolog.Nop()).AddAttachment(context.Background(), messageID, alice, NewAttachment{FileName: "a.txt"})
	assert.EqualError(t, err, "no credentials")
	repo.AssertNotCalled(t, "CreateAttachment", mock.Anything, mock.Anything)
}
