package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"leadscan/internal/model"
)

// PromptBuilder renders the classification instruction pair. The prompts are
// deterministic for a given input; the scoring rubric and output contract
// live here because they are the only lever over model output quality. The
// ranker re-validates everything downstream rather than trusting compliance.
type PromptBuilder struct {
	targetLanguage string
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder(targetLanguage string) *PromptBuilder {
	if targetLanguage == "" {
		targetLanguage = "English"
	}
	return &PromptBuilder{targetLanguage: targetLanguage}
}

// System renders the classification system instruction for a business profile.
func (b *PromptBuilder) System(business string, keywords []string) string {
	return fmt.Sprintf(`You are a social media lead-generation analyst.
You will receive raw web search results fetched from social platforms.
The user's business is: %q
Keywords: %q

Your task:
1. Identify which results are posts from potential customers actively SEEKING a service this business provides (demand side).
2. EXCLUDE posts from people or companies OFFERING services, tutorials, ads, job listings by agencies, and generic news (supply side). Score them below 50 or omit them.

Scoring rubric for intent_score:
- 80-100: explicit request language ("looking for", "need", "who can build", "recommend me")
- 60-79: indirect request (describes a problem this business solves, asks for opinions on hiring)
- 50-69: ambiguous but clearly related to the business domain
- below 50: everything else; do not include these

Output contract:
- Respond ONLY with a JSON array, no prose before or after.
- Each element has exactly these fields: platform, author_name, content, intent_score, source_url, top_comment, relevance_reason.
- top_comment is either null or an object {"author": "...", "content": "..."}.
- source_url MUST be copied verbatim from the "link" field of the matching search result. Never invent or modify a URL.
- Translate all content and top_comment text into %s, whatever the source language.
- If no result qualifies, respond with an empty array: []`,
		business, strings.Join(keywords, ", "), b.targetLanguage)
}

// User renders the user instruction carrying the raw fragments.
func (b *PromptBuilder) User(fragments []model.RawFragment) string {
	payload, err := json.Marshal(fragments)
	if err != nil {
		payload = []byte("[]")
	}
	return fmt.Sprintf(`Here are the raw search results:
%s

Classify them per the rules and return the JSON array of qualifying leads.`, payload)
}
