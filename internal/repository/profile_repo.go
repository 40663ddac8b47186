package repository

import (
	"context"
	"errors"
	"fmt"

	"sweatshares/internal/model"

	"github.com/jackc/pgx/v5"
)

type ProfileRepository interface {
	GetProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

type profileRepo struct {
	db DB
}

func NewProfileRepo(db DB) ProfileRepository {
	return &profileRepo{db: db}
}

// GetProfileByID returns nil, nil when no profile exists for id.
func (r *profileRepo) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `
		SELECT id::text, full_name, professional_role, bio, country, avatar_url,
		       COALESCE(skills, '{}'), created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var p model.Profile
	err := r.db.QueryRow(ctx, q, id).Scan(
		&p.ID,
		&p.FullName,
		&p.ProfessionalRole,
		&p.Bio,
		&p.Country,
		&p.AvatarURL,
		&p.Skills,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile %s: %w", id, err)
	}
	return &p, nil
}
