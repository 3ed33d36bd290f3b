package shares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerotocryptodev/backend/internal/auth"
)

// Tracker is what the route needs from the share store. Satisfied by *Repo;
// tests swap in failing fakes.
type Tracker interface {
	InsertEvent(ctx context.Context, targetUserID, platform string, actorID *string) error
	IncrementCount(ctx context.Context, targetUserID, platform string) error
}

type Handler struct {
	tracker Tracker
	logger  zerolog.Logger
}

func Register(rg *gin.RouterGroup, tracker Tracker, logger zerolog.Logger) {
	h := &Handler{tracker: tracker, logger: logger}
	rg.POST("/profile/share-progress", h.shareProgress)
}

type shareReq struct {
	Platform string `json:"platform"`
	UserID   string `json:"userId"`
}

// shareProgress records a share event and bumps the target's counter.
// Both writes are best-effort: losing events under failure is acceptable,
// blocking or failing the user-facing action on them is not.
func (h *Handler) shareProgress(c *gin.Context) {
	var req shareReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Platform == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Platform and userId are required"})
		return
	}

	var actorID *string
	if uid := auth.UserID(c); uid != "" {
		actorID = &uid
	}

	ctx := c.Request.Context()
	if err := h.tracker.InsertEvent(ctx, req.UserID, req.Platform, actorID); err != nil {
		h.logger.Warn().Err(err).Str("platform", req.Platform).Msg("share event not recorded")
	}
	if err := h.tracker.IncrementCount(ctx, req.UserID, req.Platform); err != nil {
		h.logger.Warn().Err(err).Str("platform", req.Platform).Msg("share count not updated")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
