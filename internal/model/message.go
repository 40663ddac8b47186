package model

import "time"

type Message struct {
	ID          string              `db:"id" json:"id"`
	SenderID    string              `db:"sender_id" json:"sender_id"`
	ReceiverID  string              `db:"receiver_id" json:"receiver_id"`
	Content     string              `db:"content" json:"content"`
	Read        bool                `db:"read" json:"read"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	Attachments []MessageAttachment `json:"attachments"`
}

type MessageAttachment struct {
	ID          string    `db:"id" json:"id"`
	MessageID   string    `db:"message_id" json:"message_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	ContentType string    `db:"content_type" json:"content_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
