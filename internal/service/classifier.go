package service

import (
	"context"

	"leadscan/internal/model"
	"leadscan/internal/utils"

	"github.com/sirupsen/logrus"
)

// Classifier turns raw search fragments into scored candidate intents using
// the LLM. Any failure on this path degrades to an empty candidate list with
// the degradation flag set; it never propagates an error upward.
type Classifier struct {
	ai      AIClient
	prompts *PromptBuilder
}

// NewClassifier creates a new classifier
func NewClassifier(ai AIClient, prompts *PromptBuilder) *Classifier {
	return &Classifier{ai: ai, prompts: prompts}
}

// Classify returns the candidate list and whether classification degraded
// (unconfigured client, transport failure, or unparseable reply).
func (c *Classifier) Classify(ctx context.Context, business string, keywords []string, fragments []model.RawFragment) ([]model.CandidateIntent, bool) {
	if c.ai == nil || !c.ai.IsEnabled() {
		logrus.Warn("LLM classification unavailable (missing API key), degrading")
		return nil, true
	}

	raw, err := c.ai.Complete(ctx, c.prompts.System(business, keywords), c.prompts.User(fragments))
	if err != nil {
		logrus.WithError(err).Warn("LLM classification request failed, degrading")
		return nil, true
	}

	var candidates []model.CandidateIntent
	if err := utils.ExtractJSONArray(raw, &candidates); err != nil {
		logrus.WithError(err).Warn("Classification reply was not a JSON array, degrading")
		return nil, true
	}

	return candidates, false
}
