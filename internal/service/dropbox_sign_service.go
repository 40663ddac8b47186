package service

import (
	"context"
	"fmt"

	"sweatshares/internal/dropboxsign"
)

const (
	AccountTypePaid = "paid"
	AccountTypeFree = "free"
)

type QuotaReport struct {
	Quotas          dropboxsign.Quotas
	AccountType     string
	CanSendRequests bool
	Message         string
}

type ConnectionReport struct {
	AccountType  string
	EmailAddress string
	Message      string
}

// DropboxSignService reshapes provider account lookups for the utility routes.
type DropboxSignService interface {
	CheckQuota(ctx context.Context) (*QuotaReport, error)
	TestConnection(ctx context.Context) (*ConnectionReport, error)
}

type dropboxSignService struct {
	client dropboxsign.Client
}

func NewDropboxSignService(client dropboxsign.Client) DropboxSignService {
	return &dropboxSignService{client: client}
}

func accountType(a *dropboxsign.Account) string {
	if a.IsPaid() {
		return AccountTypePaid
	}
	return AccountTypeFree
}

func (s *dropboxSignService) CheckQuota(ctx context.Context) (*QuotaReport, error) {
	acc, err := s.client.GetAccount(ctx)
	if err != nil {
		return nil, err
	}
	left := acc.Quotas.APISignatureRequestsLeft
	report := &QuotaReport{
		Quotas:          acc.Quotas,
		AccountType:     accountType(acc),
		CanSendRequests: left > 0,
	}
	if report.CanSendRequests {
		report.Message = fmt.Sprintf("You have %d API signature requests available", left)
	} else {
		report.Message = "No API signature requests left"
	}
	return report, nil
}

func (s *dropboxSignService) TestConnection(ctx context.Context) (*ConnectionReport, error) {
	acc, err := s.client.GetAccount(ctx)
	if err != nil {
		return nil, err
	}
	return &ConnectionReport{
		AccountType:  accountType(acc),
		EmailAddress: acc.EmailAddress,
		Message:      "Connection to Dropbox Sign successful",
	}, nil
}
