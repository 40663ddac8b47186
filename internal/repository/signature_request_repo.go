package repository

import (
	"context"
	"fmt"
	"time"

	"sweatshares/internal/model"
)

type SignatureRequestRepository interface {
	// UpdateStatus overwrites status and updated_at for the row keyed by
	// signatureRequestID. It does not check that the row exists.
	UpdateStatus(ctx context.Context, signatureRequestID, status string, updatedAt time.Time) error
	CountByStatusForUser(ctx context.Context, userID string) ([]model.StatusCount, error)
}

type signatureRequestRepo struct {
	db DB
}

func NewSignatureRequestRepo(db DB) SignatureRequestRepository {
	return &signatureRequestRepo{db: db}
}

func (r *signatureRequestRepo) UpdateStatus(ctx context.Context, signatureRequestID, status string, updatedAt time.Time) error {
	const q = `
		UPDATE signature_requests
		SET status = $2,
		    updated_at = $3
		WHERE signature_request_id = $1
	`
	if _, err := r.db.Exec(ctx, q, signatureRequestID, status, updatedAt); err != nil {
		return fmt.Errorf("update signature request %s: %w", signatureRequestID, err)
	}
	return nil
}

func (r *signatureRequestRepo) CountByStatusForUser(ctx context.Context, userID string) ([]model.StatusCount, error) {
	const q = `
		SELECT status, COUNT(*)
		FROM signature_requests
		WHERE sender_id = $1 OR signer_id = $1
		GROUP BY status
		ORDER BY status
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("count signature requests for user %s: %w", userID, err)
	}
	defer rows.Close()

	var counts []model.StatusCount
	for rows.Next() {
		var c model.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan signature request count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signature request counts: %w", err)
	}
	return counts, nil
}
