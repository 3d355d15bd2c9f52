package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/buildly/construction-api/internal/errors"
	"github.com/buildly/construction-api/internal/services"
)

// ChatHandler relays chat messages to the AI service.
type ChatHandler struct {
	aiService *services.AIService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(aiService *services.AIService) *ChatHandler {
	return &ChatHandler{
		aiService: aiService,
	}
}

// Chat forwards a single message and returns the reply with a timestamp.
// Multi-turn context, if any, lives entirely in the client.
func (h *ChatHandler) Chat(c *gin.Context) {
	type ChatRequest struct {
		Message string `json:"message"`
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		apierrors.BadRequest(c, "Message is required")
		return
	}

	reply, err := h.aiService.Relay(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrAINotConfigured) {
			apierrors.ServiceUnavailable(c, "AI service not configured")
			return
		}
		apierrors.InternalError(c, "Failed to get response from AI")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":     reply,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
