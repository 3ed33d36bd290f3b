// Package pages holds the server-side loaders that gate and assemble data
// before a page renders: resolve the user, apply the page's routing rules,
// then either redirect or hand back the props bundle.
package pages

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerotocryptodev/backend/internal/auth"
	"github.com/zerotocryptodev/backend/internal/lessons"
	"github.com/zerotocryptodev/backend/internal/profiles"
	"github.com/zerotocryptodev/backend/internal/projects"
)

type ProfileStore interface {
	Get(ctx context.Context, userID string) (*profiles.Profile, error)
}

type ProjectStore interface {
	GetOwned(ctx context.Context, userID, projectID string) (*projects.Project, error)
	ListFiles(ctx context.Context, projectID string) ([]projects.File, error)
}

type LessonStore interface {
	ListByType(ctx context.Context, projectType string) ([]lessons.Lesson, error)
	ListProgress(ctx context.Context, userID, projectID string) ([]lessons.Progress, error)
}

type Handler struct {
	profiles ProfileStore
	projects ProjectStore
	lessons  LessonStore
	logger   zerolog.Logger
}

func Register(rg *gin.RouterGroup, p ProfileStore, pr ProjectStore, l LessonStore, logger zerolog.Logger) {
	h := &Handler{profiles: p, projects: pr, lessons: l, logger: logger}

	rg.GET("/onboarding", h.onboarding)
	rg.GET("/projects/:id", h.project)
	rg.GET("/verify", h.verify)
}

// onboarding routes a visitor to login, the dashboard, or the first
// onboarding step. The completion flag is monotonic: once true the user
// is never sent back through onboarding.
func (h *Handler) onboarding(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, profiles.ErrNotFound) {
		// An infrastructure failure must not route a completed user back
		// through onboarding; only a genuinely missing row may do that.
		h.logger.Error().Err(err).Msg("onboarding profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	// A missing profile row counts as not-yet-onboarded.
	if profile != nil && profile.OnboardingCompleted {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	c.Redirect(http.StatusSeeOther, "/onboarding/interests")
}

// project assembles the editor surface's props: the owner-scoped project,
// its files ordered by filename, the lesson set for the project's type, and
// the user's progress rows. A project that is absent or owned by someone
// else renders not-found; the owner-scoped query leaks nothing either way.
func (h *Handler) project(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	ctx := c.Request.Context()
	projectID := c.Param("id")

	project, err := h.projects.GetOwned(ctx, userID, projectID)
	if err != nil {
		if !errors.Is(err, projects.ErrNotFound) {
			h.logger.Error().Err(err).Msg("project lookup failed")
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	files, err := h.projects.ListFiles(ctx, project.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("project files lookup failed")
		files = []projects.File{}
	}

	lessonSet, err := h.lessons.ListByType(ctx, project.ProjectType)
	if err != nil {
		h.logger.Error().Err(err).Msg("lessons lookup failed")
		lessonSet = []lessons.Lesson{}
	}

	progress, err := h.lessons.ListProgress(ctx, userID, project.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("progress lookup failed")
		progress = []lessons.Progress{}
	}

	c.JSON(http.StatusOK, gin.H{
		"project":  project,
		"files":    files,
		"lessons":  lessonSet,
		"progress": progress,
	})
}

func (h *Handler) verify(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.Redirect(http.StatusSeeOther, "/login?redirect=/verify")
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID})
}
