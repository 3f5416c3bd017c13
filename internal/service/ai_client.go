package service

import (
	"context"

	"leadscan/internal/model"
)

// AIClient is the interface for the LLM completion backend.
type AIClient interface {
	// Complete sends a single system+user prompt pair and returns the raw
	// text reply. The reply is untrusted free-form output.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Chat runs a multi-turn conversation under a system prompt.
	Chat(ctx context.Context, systemPrompt string, turns []model.ChatTurn) (string, error)

	// IsEnabled returns whether the client is configured and ready.
	IsEnabled() bool
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
