package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerotocryptodev/backend/internal/auth"
)

type Handler struct {
	repo   *Repo
	logger zerolog.Logger
}

func Register(rg *gin.RouterGroup, repo *Repo, logger zerolog.Logger) {
	h := &Handler{repo: repo, logger: logger}

	rg.POST("/onboarding/complete", h.completeOnboarding)
}

// completeOnboarding flips the monotonic onboarding flag for the caller.
func (h *Handler) completeOnboarding(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.repo.CompleteOnboarding(c.Request.Context(), userID); err != nil {
		h.logger.Error().Err(err).Msg("onboarding completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
