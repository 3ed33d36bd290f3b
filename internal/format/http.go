package format

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	client *Client
	logger zerolog.Logger
}

func Register(rg *gin.RouterGroup, client *Client, logger zerolog.Logger) {
	h := &Handler{client: client, logger: logger}
	rg.POST("/format", h.format)
}

type formatReq struct {
	Code string `json:"code"`
}

func (h *Handler) format(c *gin.Context) {
	var req formatReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No code provided"})
		return
	}

	formatted, err := h.client.Format(c.Request.Context(), req.Code)
	if err != nil {
		h.logger.Error().Err(err).Msg("format failed")

		// Syntax errors get the engine's own message; anything else stays generic.
		var engineErr *EngineError
		if errors.As(err, &engineErr) && engineErr.Message != "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": engineErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to format code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"formatted": formatted})
}
