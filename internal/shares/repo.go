package shares

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// InsertEvent appends one row to the share log. actorID is nil when the
// share came from an anonymous visitor.
func (r *Repo) InsertEvent(ctx context.Context, targetUserID, platform string, actorID *string) error {
	const q = `
insert into user_shares (user_id, platform, shared_by, shared_at)
values ($1::uuid, $2, $3::uuid, now());
`
	if _, err := r.db.Exec(ctx, q, targetUserID, platform, actorID); err != nil {
		return fmt.Errorf("insert share event: %w", err)
	}
	return nil
}

// IncrementCount bumps the denormalized share counter on the target profile
// via the increment_share_count database function.
func (r *Repo) IncrementCount(ctx context.Context, targetUserID, platform string) error {
	const q = `select increment_share_count($1::uuid, $2);`
	if _, err := r.db.Exec(ctx, q, targetUserID, platform); err != nil {
		return fmt.Errorf("increment share count: %w", err)
	}
	return nil
}
