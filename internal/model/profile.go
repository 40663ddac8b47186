package model

import "time"

// Profile is the public profile row owned by a Supabase auth user.
type Profile struct {
	ID               string    `db:"id" json:"id"`
	FullName         *string   `db:"full_name" json:"full_name"`
	ProfessionalRole *string   `db:"professional_role" json:"professional_role"`
	Bio              *string   `db:"bio" json:"bio"`
	Country          *string   `db:"country" json:"country"`
	AvatarURL        *string   `db:"avatar_url" json:"avatar_url"`
	Skills           []string  `db:"skills" json:"skills"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName falls back to a generic label for profiles that never set a name.
func (p *Profile) DisplayName() string {
	if p == nil || p.FullName == nil || *p.FullName == "" {
		return "Anonymous"
	}
	return *p.FullName
}
