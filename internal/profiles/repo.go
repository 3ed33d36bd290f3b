package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("profile not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Profile struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	ShareCount          int       `json:"share_count"`
	CreatedAt           time.Time `json:"created_at"`
}

func (r *Repo) Get(ctx context.Context, userID string) (*Profile, error) {
	const q = `
select id::text, coalesce(email, ''), coalesce(onboarding_completed, false), coalesce(share_count, 0), created_at
from profiles
where id = $1::uuid;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, userID).
		Scan(&p.ID, &p.Email, &p.OnboardingCompleted, &p.ShareCount, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CompleteOnboarding flips the onboarding flag. The flag is monotonic:
// completing an already-completed onboarding is a no-op, never a reset.
func (r *Repo) CompleteOnboarding(ctx context.Context, userID string) error {
	const q = `
update profiles
set onboarding_completed = true, updated_at = now()
where id = $1::uuid and onboarding_completed is distinct from true;
`
	if _, err := r.db.Exec(ctx, q, userID); err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	return nil
}
