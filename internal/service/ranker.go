package service

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"leadscan/internal/config"
	"leadscan/internal/model"

	"github.com/google/uuid"
)

// Defaults applied when the classifier omits a field
const (
	DefaultAuthor           = "Anonymous"
	DefaultInsightAuthor    = "AI Insight"
	defaultInsightComment   = "This author appears to be actively seeking a service like yours."
	scoreLevelHighThreshold = 90
)

// Ranker applies the filtering and ordering policy to classifier output.
// Every rule here is a hard rule: candidates are untrusted model output and
// nothing the prompt promised is assumed to hold.
type Ranker struct {
	minScore     int
	maxIntents   int
	defaultScore int
}

// NewRanker creates a new ranker from the scan policy configuration
func NewRanker(cfg *config.ScanConfig) *Ranker {
	return &Ranker{
		minScore:     cfg.MinScore,
		maxIntents:   cfg.MaxIntents,
		defaultScore: cfg.DefaultScore,
	}
}

// Rank filters, orders, and validates candidates into final intents:
// drop unusable source URLs and empty content, drop scores below the
// threshold, stable-sort by score descending, then map to the display shape.
func (r *Ranker) Rank(candidates []model.CandidateIntent, fallback model.Platform) []model.Intent {
	kept := make([]model.CandidateIntent, 0, len(candidates))
	for _, c := range candidates {
		if !UsableSourceURL(c.SourceURL) {
			continue
		}
		if strings.TrimSpace(c.Content) == "" {
			continue
		}
		if thresholdScore(c.IntentScore) < r.minScore {
			continue
		}
		kept = append(kept, c)
	}

	// Stable sort keeps the model's original order for equal scores
	sort.SliceStable(kept, func(i, j int) bool {
		return thresholdScore(kept[i].IntentScore) > thresholdScore(kept[j].IntentScore)
	})

	if len(kept) > r.maxIntents {
		kept = kept[:r.maxIntents]
	}

	intents := make([]model.Intent, 0, len(kept))
	for _, c := range kept {
		intents = append(intents, r.buildIntent(c, fallback))
	}
	return intents
}

// buildIntent maps one untrusted candidate to the validated display shape
func (r *Ranker) buildIntent(c model.CandidateIntent, fallback model.Platform) model.Intent {
	platform, ok := model.NormalizePlatform(c.Platform)
	if !ok {
		platform = fallback
	}

	author := strings.TrimSpace(c.AuthorName)
	if author == "" {
		author = DefaultAuthor
	}

	score := r.defaultScore
	if c.IntentScore != nil {
		score = clampScore(int(*c.IntentScore))
	}

	topComment := c.TopComment
	if topComment == nil || strings.TrimSpace(topComment.Content) == "" {
		topComment = DefaultTopComment()
	}

	return model.Intent{
		ID:              uuid.NewString(),
		Platform:        platform,
		Avatar:          AvatarURL(platform, author),
		Author:          author,
		Content:         c.Content,
		IntentScore:     score,
		ScoreLevel:      ScoreLevel(score),
		SourceURL:       c.SourceURL,
		PostedAt:        time.Now().UTC(),
		TopComment:      topComment,
		RelevanceReason: c.RelevanceReason,
	}
}

// thresholdScore is the score used for filtering and ordering: missing
// scores count as zero so unscored candidates never pass the threshold.
func thresholdScore(s *float64) int {
	if s == nil {
		return 0
	}
	return int(*s)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// UsableSourceURL reports whether a candidate's source_url can serve as a
// lead link: present, absolute http(s), and not a search/listing page.
func UsableSourceURL(raw string) bool {
	if raw == "" || strings.Contains(raw, "/search") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AvatarURL derives a deterministic avatar for a platform/author pair
func AvatarURL(platform model.Platform, author string) string {
	return fmt.Sprintf("https://unavatar.io/%s/%s", platform, url.PathEscape(author))
}

// ScoreLevel buckets a score for display
func ScoreLevel(score int) string {
	if score >= scoreLevelHighThreshold {
		return "high"
	}
	return "medium"
}

// DefaultTopComment synthesizes the commentary attached when the model
// supplies none, keeping the card shape consistent for the UI.
func DefaultTopComment() *model.TopComment {
	return &model.TopComment{
		Author:  DefaultInsightAuthor,
		Content: defaultInsightComment,
	}
}
