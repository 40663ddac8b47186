package dto

import "time"

// MessageCreateDTO is the body of POST /messages. The sender is the caller.
// Content may be empty when at least one attachment is declared.
type MessageCreateDTO struct {
	ReceiverID  string                `json:"receiver_id" validate:"required,uuid"`
	Content     string                `json:"content" validate:"max=5000"`
	Attachments []AttachmentCreateDTO `json:"attachments,omitempty" validate:"omitempty,max=10,dive"`
}

type AttachmentCreateDTO struct {
	FileName    string `json:"file_name" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
	FileSize    int64  `json:"file_size" validate:"required,gt=0,lte=52428800"`
}

type AttachmentResponseDTO struct {
	ID          string    `json:"id"`
	MessageID   string    `json:"message_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttachmentUploadResponseDTO struct {
	Attachment AttachmentResponseDTO `json:"attachment"`
	UploadURL  string                `json:"upload_url"`
	ExpiresAt  time.Time             `json:"expires_at"`
}

type MessageResponseDTO struct {
	ID          string                  `json:"id"`
	SenderID    string                  `json:"sender_id"`
	ReceiverID  string                  `json:"receiver_id"`
	Content     string                  `json:"content"`
	Read        bool                    `json:"read"`
	CreatedAt   time.Time               `json:"created_at"`
	Attachments []AttachmentResponseDTO `json:"attachments"`
}

// MessageSendResponseDTO is the created message plus one upload URL per
// attachment declared in the request.
type MessageSendResponseDTO struct {
	MessageResponseDTO
	Uploads []AttachmentUploadResponseDTO `json:"uploads"`
}
