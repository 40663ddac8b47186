package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sweatshares/internal/model"

	"github.com/jackc/pgx/v5"
)

type ListingRepository interface {
	// GetListingWithProfile returns the listing joined with its owning
	// profile, or nil, nil when the listing does not exist.
	GetListingWithProfile(ctx context.Context, id string) (*model.Listing, error)
}

type listingRepo struct {
	db DB
}

func NewListingRepo(db DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) GetListingWithProfile(ctx context.Context, id string) (*model.Listing, error) {
	const q = `
		SELECT l.id::text, l.profile_id::text, l.title, l.description, l.listing_type, l.sector,
		       l.location, l.compensation_type, l.compensation_value::text, l.amount::text, l.created_at,
		       p.id::text, p.full_name, p.professional_role, p.bio, p.country, p.avatar_url,
		       COALESCE(p.skills, '{}'), p.created_at, p.updated_at
		FROM listings l
		LEFT JOIN profiles p ON p.id = l.profile_id
		WHERE l.id = $1
	`
	// The profile columns are NULL when the owning profile row is gone.
	var (
		l                    model.Listing
		p                    model.Profile
		profileID            *string
		createdAt, updatedAt *time.Time
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&l.ID,
		&l.ProfileID,
		&l.Title,
		&l.Description,
		&l.ListingType,
		&l.Sector,
		&l.Location,
		&l.CompensationType,
		&l.CompensationValue,
		&l.Amount,
		&l.CreatedAt,
		&profileID,
		&p.FullName,
		&p.ProfessionalRole,
		&p.Bio,
		&p.Country,
		&p.AvatarURL,
		&p.Skills,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch listing %s: %w", id, err)
	}
	if profileID != nil {
		p.ID = *profileID
		if createdAt != nil {
			p.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			p.UpdatedAt = *updatedAt
		}
		l.Profile = &p
	}
	return &l, nil
}
