package service

import (
	"fmt"
	"strings"
	"time"

	"leadscan/internal/config"
	"leadscan/internal/model"

	"github.com/google/uuid"
)

// FallbackMode selects what the pipeline returns when ranking produced no
// intents. The mode is explicit configuration, never an incidental code path.
type FallbackMode string

const (
	// FallbackDegrade builds leads directly from raw search fragments.
	FallbackDegrade FallbackMode = "degrade"
	// FallbackPlaceholder synthesizes clearly-marked demo leads.
	FallbackPlaceholder FallbackMode = "placeholder"
	// FallbackEmpty returns no leads with an explanatory message.
	FallbackEmpty FallbackMode = "empty"
)

// Regime names which pipeline path produced a response's result set
type Regime string

const (
	RegimeReal        Regime = "real"
	RegimeDegraded    Regime = "degraded"
	RegimePlaceholder Regime = "placeholder"
	RegimeEmpty       Regime = "empty"
)

// Message returns the human-readable status line for a regime
func (r Regime) Message() string {
	switch r {
	case RegimeReal:
		return "Scanned live posts across your platforms and ranked the strongest buying signals."
	case RegimeDegraded:
		return "AI classification was unavailable, so these leads were built directly from raw search hits."
	case RegimePlaceholder:
		return "No live posts were found. Showing illustrative examples based on your business profile."
	default:
		return "No matching posts were found. Try broader keywords or additional platforms."
	}
}

// FallbackController decides the result set when the ranked list is empty:
// degrade from raw fragments when any exist, otherwise follow the configured
// sub-policy (placeholder or empty).
type FallbackController struct {
	mode          FallbackMode
	degradedScore int
	maxIntents    int
}

// NewFallbackController creates a new fallback controller. Config validation
// happens at load time, so mode is assumed to be one of the known values.
func NewFallbackController(cfg *config.ScanConfig) *FallbackController {
	return &FallbackController{
		mode:          FallbackMode(cfg.FallbackMode),
		degradedScore: cfg.DegradedScore,
		maxIntents:    cfg.MaxIntents,
	}
}

// Mode returns the configured fallback sub-policy
func (f *FallbackController) Mode() FallbackMode {
	return f.mode
}

// Build produces the fallback result set and the regime that describes it
func (f *FallbackController) Build(business string, platforms []model.Platform, fragments []model.RawFragment) ([]model.Intent, Regime) {
	if f.mode == FallbackEmpty {
		return nil, RegimeEmpty
	}

	if len(fragments) > 0 {
		return f.fromFragments(fragments), RegimeDegraded
	}

	if f.mode == FallbackPlaceholder {
		return f.placeholders(business, platforms), RegimePlaceholder
	}

	return nil, RegimeEmpty
}

// fromFragments builds degraded leads straight from search hits: the
// fragment's own link, snippet as content, a fixed moderate score. Nothing
// is fabricated.
func (f *FallbackController) fromFragments(fragments []model.RawFragment) []model.Intent {
	intents := make([]model.Intent, 0, len(fragments))
	for _, frag := range fragments {
		content := strings.TrimSpace(frag.Snippet)
		if content == "" {
			content = strings.TrimSpace(frag.Title)
		}
		if content == "" {
			continue
		}

		intents = append(intents, model.Intent{
			ID:              uuid.NewString(),
			Platform:        frag.Platform,
			Avatar:          AvatarURL(frag.Platform, DefaultAuthor),
			Author:          DefaultAuthor,
			Content:         content,
			IntentScore:     f.degradedScore,
			ScoreLevel:      ScoreLevel(f.degradedScore),
			SourceURL:       frag.Link,
			PostedAt:        time.Now().UTC(),
			TopComment:      DefaultTopComment(),
			RelevanceReason: "Unclassified search hit matching your keywords.",
		})
		if len(intents) == f.maxIntents {
			break
		}
	}
	return intents
}

// placeholders synthesizes clearly-marked demo leads, one per platform, each
// linking to a live discovery page on the platform rather than a dead URL.
func (f *FallbackController) placeholders(business string, platforms []model.Platform) []model.Intent {
	const placeholderCount = 3

	intents := make([]model.Intent, 0, placeholderCount)
	for _, p := range platforms {
		author := fmt.Sprintf("Demo %s user", p)
		intents = append(intents, model.Intent{
			ID:              uuid.NewString(),
			Platform:        p,
			Avatar:          AvatarURL(p, author),
			Author:          author,
			Content:         fmt.Sprintf("[Example] A post asking for %q recommendations, the kind of lead a scan surfaces on %s.", business, p),
			IntentScore:     f.degradedScore,
			ScoreLevel:      ScoreLevel(f.degradedScore),
			SourceURL:       p.DiscoveryURL(business),
			PostedAt:        time.Now().UTC(),
			TopComment:      DefaultTopComment(),
			RelevanceReason: "Synthesized example, not a real post.",
		})
		if len(intents) == placeholderCount {
			break
		}
	}
	return intents
}
