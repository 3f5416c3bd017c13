package handler

import (
	"net/http"

	"leadscan/internal/model"
	"leadscan/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultChatSystemPrompt = "You are a helpful assistant."

// ChatHandler handles the assistant chat passthrough
type ChatHandler struct {
	ai service.AIClient
}

// NewChatHandler creates a new chat handler
func NewChatHandler(ai service.AIClient) *ChatHandler {
	return &ChatHandler{ai: ai}
}

// Chat handles POST /api/chat, a pure passthrough to the LLM chat endpoint
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultChatSystemPrompt
	}

	message, err := h.ai.Chat(c.Request.Context(), systemPrompt, req.Messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate response"})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Message: message})
}
