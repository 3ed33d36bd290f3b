package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers both a missing project id and a project owned by
// someone else; queries are owner-scoped so the two are indistinguishable.
var ErrNotFound = errors.New("project not found")

// Project types a user can build.
const (
	TypeNFTMarketplace = "nft_marketplace"
	TypeToken          = "token"
	TypeDAO            = "dao"
	TypeGame           = "game"
	TypeSocial         = "social"
	TypeCreator        = "creator"
)

func ValidType(t string) bool {
	switch t {
	case TypeNFTMarketplace, TypeToken, TypeDAO, TypeGame, TypeSocial, TypeCreator:
		return true
	}
	return false
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	ProjectType string    `json:"project_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type File struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Repo) Create(ctx context.Context, userID, name, projectType string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	if !ValidType(projectType) {
		return nil, fmt.Errorf("invalid project type: %s", projectType)
	}

	const q = `
insert into projects (user_id, name, project_type)
values ($1::uuid, $2, $3)
returning id::text, user_id::text, name, project_type, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userID, name, projectType).
		Scan(&p.ID, &p.UserID, &p.Name, &p.ProjectType, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOwned fetches a project only when it belongs to the given user.
// Cross-tenant reads are structurally impossible: the owner id is part
// of the query, not a post-fetch check.
func (r *Repo) GetOwned(ctx context.Context, userID, projectID string) (*Project, error) {
	const q = `
select id::text, user_id::text, name, project_type, created_at, updated_at
from projects
where id = $1::uuid and user_id = $2::uuid;
`
	var p Project
	err := r.db.QueryRow(ctx, q, projectID, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.ProjectType, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListFiles(ctx context.Context, projectID string) ([]File, error) {
	const q = `
select id::text, project_id::text, filename, content, updated_at
from project_files
where project_id = $1::uuid
order by filename;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]File, 0, 8)
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Filename, &f.Content, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
