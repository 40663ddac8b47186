package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sweatshares/internal/model"

	"github.com/jackc/pgx/v5"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, m *model.Message) error
	GetMessageByID(ctx context.Context, id string) (*model.Message, error)
	// GetConversation returns messages exchanged between userA and userB,
	// newest first, with their attachments.
	GetConversation(ctx context.Context, userA, userB string, limit, offset int) ([]model.Message, error)
	// MarkRead flags the message read if receiverID received it. It reports
	// whether a row matched.
	MarkRead(ctx context.Context, id, receiverID string) (bool, error)
	CreateAttachment(ctx context.Context, a *model.MessageAttachment) error
	// DailyCounts returns per-day sent/received counts for userID since the
	// given day. Days without messages are absent.
	DailyCounts(ctx context.Context, userID string, since time.Time) ([]model.DailyMessageCount, error)
}

type messageRepo struct {
	db DB
}

func NewMessageRepo(db DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) CreateMessage(ctx context.Context, m *model.Message) error {
	const q = `
		INSERT INTO messages (id, sender_id, receiver_id, content, read)
		VALUES ($1, $2, $3, $4, false)
		RETURNING read, created_at
	`
	if err := r.db.QueryRow(ctx, q, m.ID, m.SenderID, m.ReceiverID, m.Content).Scan(&m.Read, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert message from %s to %s: %w", m.SenderID, m.ReceiverID, err)
	}
	return nil
}

func (r *messageRepo) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	const q = `
		SELECT id::text, sender_id::text, receiver_id::text, content, read, created_at
		FROM messages
		WHERE id = $1
	`
	var m model.Message
	err := r.db.QueryRow(ctx, q, id).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch message %s: %w", id, err)
	}
	return &m, nil
}

func (r *messageRepo) GetConversation(ctx context.Context, userA, userB string, limit, offset int) ([]model.Message, error) {
	const q = `
		SELECT id::text, sender_id::text, receiver_id::text, content, read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, q, userA, userB, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query conversation %s/%s: %w", userA, userB, err)
	}
	defer rows.Close()

	var (
		msgs  []model.Message
		ids   []string
		index = map[string]int{}
	)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Attachments = []model.MessageAttachment{}
		index[m.ID] = len(msgs)
		ids = append(ids, m.ID)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation: %w", err)
	}
	if len(ids) == 0 {
		return msgs, nil
	}

	attachments, err := r.attachmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range attachments {
		if i, ok := index[a.MessageID]; ok {
			msgs[i].Attachments = append(msgs[i].Attachments, a)
		}
	}
	return msgs, nil
}

func (r *messageRepo) attachmentsFor(ctx context.Context, messageIDs []string) ([]model.MessageAttachment, error) {
	const q = `
		SELECT id::text, message_id::text, file_name, file_path, file_size, content_type, created_at
		FROM message_attachments
		WHERE message_id::text = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, q, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("query message attachments: %w", err)
	}
	defer rows.Close()

	var out []model.MessageAttachment
	for rows.Next() {
		var a model.MessageAttachment
		if err := rows.Scan(&a.ID, &a.MessageID, &a.FileName, &a.FilePath, &a.FileSize, &a.ContentType, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message attachment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message attachments: %w", err)
	}
	return out, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, id, receiverID string) (bool, error) {
	const q = `UPDATE messages SET read = true WHERE id = $1 AND receiver_id = $2`
	tag, err := r.db.Exec(ctx, q, id, receiverID)
	if err != nil {
		return false, fmt.Errorf("mark message %s read: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *messageRepo) CreateAttachment(ctx context.Context, a *model.MessageAttachment) error {
	const q = `
		INSERT INTO message_attachments (id, message_id, file_name, file_path, file_size, content_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, q, a.ID, a.MessageID, a.FileName, a.FilePath, a.FileSize, a.ContentType).Scan(&a.CreatedAt); err != nil {
		return fmt.Errorf("insert attachment for message %s: %w", a.MessageID, err)
	}
	return nil
}

func (r *messageRepo) DailyCounts(ctx context.Context, userID string, since time.Time) ([]model.DailyMessageCount, error) {
	const q = `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day,
		       COUNT(*) FILTER (WHERE sender_id = $1),
		       COUNT(*) FILTER (WHERE receiver_id = $1)
		FROM messages
		WHERE (sender_id = $1 OR receiver_id = $1)
		  AND created_at >= $2
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.Query(ctx, q, userID, since)
	if err != nil {
		return nil, fmt.Errorf("count daily messages for user %s: %w", userID, err)
	}
	defer rows.Close()

	var out []model.DailyMessageCount
	for rows.Next() {
		var c model.DailyMessageCount
		if err := rows.Scan(&c.Day, &c.Sent, &c.Received); err != nil {
			return nil, fmt.Errorf("scan daily message count: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily message counts: %w", err)
	}
	return out, nil
}
