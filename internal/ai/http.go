package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// streamCeiling is the hard wall-clock cap on a chat stream. The handler
// never retries or resumes an interrupted stream; clients handle truncation.
const streamCeiling = 30 * time.Second

type Handler struct {
	client *Client
	logger zerolog.Logger
}

func Register(rg *gin.RouterGroup, client *Client, logger zerolog.Logger) {
	h := &Handler{client: client, logger: logger}

	rg.POST("/chat", h.chat)
	rg.POST("/tutor", h.tutor)
	rg.POST("/generate-project", h.generateProject)
	rg.POST("/lesson-intro", h.lessonIntro)
}

type chatReq struct {
	Messages []Message     `json:"messages"`
	Context  *TutorContext `json:"context"`
}

// chat relays a tutor conversation as a live text/event-stream. Deltas are
// forwarded in generation order with no buffering; client disconnect and the
// 30s ceiling both cancel the upstream request through the same context.
func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var tctx TutorContext
	if req.Context != nil {
		tctx = *req.Context
	}
	systemPrompt := BuildTutorPrompt(tctx)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), streamCeiling)
	defer cancel()

	wroteHeader := false
	writeDelta := func(text string) error {
		if !wroteHeader {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
			wroteHeader = true
		}
		fmt.Fprintf(c.Writer, "event: delta\ndata: %s\n\n", jsonString(text))
		flusher.Flush()
		return nil
	}

	err := h.client.Stream(ctx, systemPrompt, req.Messages, writeDelta)
	if err != nil {
		if !wroteHeader {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get response from tutor"})
			h.logger.Error().Err(err).Msg("chat stream failed before first delta")
			return
		}
		// Mid-stream failure or ceiling hit: nothing to send but the end marker.
		h.logger.Warn().Err(err).Msg("chat stream interrupted")
	}

	if wroteHeader {
		fmt.Fprint(c.Writer, "event: done\ndata: {}\n\n")
		flusher.Flush()
	} else {
		c.Header("Content-Type", "text/event-stream")
		fmt.Fprint(c.Writer, "event: done\ndata: {}\n\n")
		flusher.Flush()
	}
}

type tutorReq struct {
	Message string        `json:"message"`
	Context *TutorContext `json:"context"`
}

func (h *Handler) tutor(c *gin.Context) {
	var req tutorReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	var tctx TutorContext
	if req.Context != nil {
		tctx = *req.Context
	}
	systemPrompt := BuildTutorPrompt(tctx)

	response, err := h.client.Complete(c.Request.Context(), systemPrompt, []Message{
		{Role: "user", Content: req.Message},
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("tutor completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get response from tutor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

type generateProjectReq struct {
	Interests []string `json:"interests"`
}

func (h *Handler) generateProject(c *gin.Context) {
	var req generateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Interests) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Interests are required"})
		return
	}

	userMessage := fmt.Sprintf(
		"The user's interests are: %s.\nGenerate 3 unique Web3 project ideas that combine these passions with blockchain technology.",
		strings.Join(req.Interests, ", "),
	)

	text, err := h.client.Complete(c.Request.Context(), ProjectGeneratorPrompt, []Message{
		{Role: "user", Content: userMessage},
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("project generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate project ideas"})
		return
	}

	projects, err := ParseProjectIdeas(text)
	if err != nil {
		h.logger.Error().Err(err).Str("text", text).Msg("project ideas unparsable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate project ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

type lessonIntroReq struct {
	LessonTitle       string   `json:"lessonTitle"`
	LessonDescription string   `json:"lessonDescription"`
	LessonConcepts    []string `json:"lessonConcepts"`
	ProjectType       string   `json:"projectType"`
	ProjectName       string   `json:"projectName"`
}

func (h *Handler) lessonIntro(c *gin.Context) {
	var req lessonIntroReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	concepts := "General coding concepts"
	if len(req.LessonConcepts) > 0 {
		concepts = strings.Join(req.LessonConcepts, ", ")
	}

	prompt := fmt.Sprintf(`Introduce this lesson to a complete beginner:

PROJECT: %s (%s)
LESSON: %s
GOAL: %s
KEY CONCEPTS: %s

Create a warm, educational introduction that:
1. Welcomes them to the lesson
2. Explains what they'll build and why it matters
3. Defines the key terms they'll encounter (use the 📖 format)
4. Shows a fill-in-the-blank preview of the code they'll write
5. Ends with encouragement`,
		req.ProjectName, req.ProjectType, req.LessonTitle, req.LessonDescription, concepts)

	intro, err := h.client.Complete(c.Request.Context(), LessonIntroPrompt, []Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("lesson intro failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate lesson introduction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"intro": intro})
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
