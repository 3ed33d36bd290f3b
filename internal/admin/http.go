package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/zerotocryptodev/backend/internal/auth"
)

type Handler struct {
	allowlist *Allowlist
	db        *pgxpool.Pool
	logger    zerolog.Logger
}

func Register(rg *gin.RouterGroup, allowlist *Allowlist, db *pgxpool.Pool, logger zerolog.Logger) {
	h := &Handler{allowlist: allowlist, db: db, logger: logger}

	rg.Use(auth.RequireUser())
	rg.Use(h.requireAdmin)
	rg.GET("/stats", h.stats)
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if !h.allowlist.IsAdminEmail(auth.UserEmail(c)) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

type SignupBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LessonCompletion struct {
	LessonID    string `json:"lesson_id"`
	Title       string `json:"title"`
	Completions int    `json:"completions"`
}

type Stats struct {
	SignupsByDay      []SignupBucket     `json:"signups_by_day"`
	LessonCompletions []LessonCompletion `json:"lesson_completions"`
	TotalShares       int                `json:"total_shares"`
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.loadStats(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("admin stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) loadStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	const signupsQ = `
select to_char(created_at::date, 'YYYY-MM-DD'), count(*)
from profiles
where created_at >= now() - interval '30 days'
group by created_at::date
order by created_at::date;
`
	rows, err := h.db.Query(ctx, signupsQ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.SignupsByDay = make([]SignupBucket, 0, 30)
	for rows.Next() {
		var b SignupBucket
		if err := rows.Scan(&b.Date, &b.Count); err != nil {
			return nil, err
		}
		stats.SignupsByDay = append(stats.SignupsByDay, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const lessonsQ = `
select l.id::text, l.title, count(p.lesson_id)
from lessons l
left join learning_progress p on p.lesson_id = l.id and p.completed
group by l.id, l.title, l.order_index
order by l.order_index;
`
	lrows, err := h.db.Query(ctx, lessonsQ)
	if err != nil {
		return nil, err
	}
	defer lrows.Close()

	stats.LessonCompletions = make([]LessonCompletion, 0, 32)
	for lrows.Next() {
		var lc LessonCompletion
		if err := lrows.Scan(&lc.LessonID, &lc.Title, &lc.Completions); err != nil {
			return nil, err
		}
		stats.LessonCompletions = append(stats.LessonCompletions, lc)
	}
	if err := lrows.Err(); err != nil {
		return nil, err
	}

	const sharesQ = `select count(*) from user_shares;`
	if err := h.db.QueryRow(ctx, sharesQ).Scan(&stats.TotalShares); err != nil {
		return nil, err
	}

	return &stats, nil
}
