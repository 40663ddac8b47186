package service

import (
	"context"
	"time"

	"sweatshares/internal/model"
	"sweatshares/internal/repository"
)

type DashboardStats struct {
	Messages          []model.DailyMessageCount
	SignatureRequests []model.StatusCount
}

// DashboardService assembles the series behind the dashboard charts.
type DashboardService interface {
	Stats(ctx context.Context, userID string, days int) (*DashboardStats, error)
}

type dashboardService struct {
	messages   repository.MessageRepository
	signatures repository.SignatureRequestRepository
	now        func() time.Time
}

func NewDashboardService(messages repository.MessageRepository, signatures repository.SignatureRequestRepository) DashboardService {
	return &dashboardService{messages: messages, signatures: signatures, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context, userID string, days int) (*DashboardStats, error) {
	today := truncateDay(s.now().UTC())
	since := today.AddDate(0, 0, -(days - 1))

	counts, err := s.messages.DailyCounts(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	statuses, err := s.signatures.CountByStatusForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if statuses == nil {
		statuses = []model.StatusCount{}
	}
	return &DashboardStats{
		Messages:          fillDays(counts, since, days),
		SignatureRequests: statuses,
	}, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// fillDays returns exactly days points starting at since, taking counts
// from the sparse input and zero elsewhere.
func fillDays(counts []model.DailyMessageCount, since time.Time, days int) []model.DailyMessageCount {
	byDay := make(map[time.Time]model.DailyMessageCount, len(counts))
	for _, c := range counts {
		byDay[truncateDay(c.Day.UTC())] = c
	}
	out := make([]model.DailyMessageCount, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		c := byDay[day]
		c.Day = day
		out = append(out, c)
	}
	return out
}
