package projects

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerotocryptodev/backend/internal/auth"
	"github.com/zerotocryptodev/backend/internal/lessons"
)

type Handler struct {
	repo    *Repo
	lessons *lessons.Repo
	logger  zerolog.Logger
}

func Register(rg *gin.RouterGroup, repo *Repo, lessonRepo *lessons.Repo, logger zerolog.Logger) {
	h := &Handler{repo: repo, lessons: lessonRepo, logger: logger}

	rg.POST("", h.create)
	rg.POST("/:id/progress", h.upsertProgress)
}

type createReq struct {
	Name        string `json:"name"`
	ProjectType string `json:"project_type"`
}

// create persists the project idea the user picked during onboarding.
func (h *Handler) create(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if !ValidType(req.ProjectType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), userID, strings.TrimSpace(req.Name), req.ProjectType)
	if err != nil {
		h.logger.Error().Err(err).Msg("project create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": p})
}

type progressReq struct {
	LessonID  string `json:"lesson_id"`
	Completed bool   `json:"completed"`
}

// upsertProgress marks a lesson done (or not) for the calling user's
// project. The project is re-fetched owner-scoped so progress can never be
// written against someone else's project.
func (h *Handler) upsertProgress(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil || req.LessonID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson_id is required"})
		return
	}

	ctx := c.Request.Context()
	project, err := h.repo.GetOwned(ctx, userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	if err := h.lessons.UpsertProgress(ctx, userID, project.ID, req.LessonID, req.Completed); err != nil {
		h.logger.Error().Err(err).Msg("progress upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
