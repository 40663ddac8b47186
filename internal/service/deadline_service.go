package service

import (
	"context"

	"sweatshares/internal/metrics"
	"sweatshares/internal/repository"

	"github.com/rs/zerolog"
)

// DeadlineService triggers the deadline scan. Scheduling is left to the
// external caller.
type DeadlineService interface {
	CheckDeadlines(ctx context.Context, triggeredBy string) error
}

type deadlineService struct {
	repo   repository.DeadlineRepository
	logger zerolog.Logger
}

func NewDeadlineService(repo repository.DeadlineRepository, logger zerolog.Logger) DeadlineService {
	return &deadlineService{repo: repo, logger: logger.With().Str("service", "DeadlineService").Logger()}
}

func (s *deadlineService) CheckDeadlines(ctx context.Context, triggeredBy string) error {
	if err := s.repo.CheckApproachingDeadlines(ctx); err != nil {
		metrics.DeadlineChecksTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("user_id", triggeredBy).Msg("Deadline check failed")
		return err
	}
	metrics.DeadlineChecksTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("user_id", triggeredBy).Msg("Deadline check completed")
	return nil
}
