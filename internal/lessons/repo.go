package lessons

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Lesson rows are seeded per project type and read-only here.
type Lesson struct {
	ID          string `json:"id"`
	ProjectType string `json:"project_type"`
	OrderIndex  int    `json:"order_index"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

type Progress struct {
	UserID    string    `json:"user_id"`
	ProjectID string    `json:"project_id"`
	LessonID  string    `json:"lesson_id"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Repo) ListByType(ctx context.Context, projectType string) ([]Lesson, error) {
	const q = `
select id::text, project_type, order_index, title, content
from lessons
where project_type = $1
order by order_index;
`
	rows, err := r.db.Query(ctx, q, projectType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Lesson, 0, 16)
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.ProjectType, &l.OrderIndex, &l.Title, &l.Content); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) ListProgress(ctx context.Context, userID, projectID string) ([]Progress, error) {
	const q = `
select user_id::text, project_id::text, lesson_id::text, completed, updated_at
from learning_progress
where user_id = $1::uuid and project_id = $2::uuid;
`
	rows, err := r.db.Query(ctx, q, userID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Progress, 0, 16)
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.UserID, &p.ProjectID, &p.LessonID, &p.Completed, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) UpsertProgress(ctx context.Context, userID, projectID, lessonID string, completed bool) error {
	const q = `
insert into learning_progress (user_id, project_id, lesson_id, completed, updated_at)
values ($1::uuid, $2::uuid, $3::uuid, $4, now())
on conflict (user_id, project_id, lesson_id) do update
set completed = excluded.completed, updated_at = now();
`
	if _, err := r.db.Exec(ctx, q, userID, projectID, lessonID, completed); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}
