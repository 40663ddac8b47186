package repository

import (
	"context"
	"fmt"
)

// DeadlineRepository wraps the stored procedure that scans for approaching
// deadlines and queues notifications for them.
type DeadlineRepository interface {
	CheckApproachingDeadlines(ctx context.Context) error
}

type deadlineRepo struct {
	db DB
}

func NewDeadlineRepo(db DB) DeadlineRepository {
	return &deadlineRepo{db: db}
}

func (r *deadlineRepo) CheckApproachingDeadlines(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `SELECT check_approaching_deadlines()`); err != nil {
		return fmt.Errorf("rpc check_approaching_deadlines: %w", err)
	}
	return nil
}
