package service

import (
	"context"

	"sweatshares/internal/model"
	"sweatshares/internal/repository"

	"github.com/google/uuid"
)

type ListingService interface {
	GetListing(ctx context.Context, id string) (*model.Listing, error)
}

type listingService struct {
	repo repository.ListingRepository
}

func NewListingService(repo repository.ListingRepository) ListingService {
	return &listingService{repo: repo}
}

// GetListing returns ErrListingNotFound for ids that are not UUIDs without
// touching the store.
func (s *listingService) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrListingNotFound
	}
	l, err := s.repo.GetListingWithProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	return l, nil
}
