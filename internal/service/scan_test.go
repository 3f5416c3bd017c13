package service

import (
	"context"
	"strings"
	"testing"

	"leadscan/internal/config"
	"leadscan/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAI is an AIClient test double with a canned reply.
type stubAI struct {
	enabled bool
	reply   string
	err     error
	calls   int
}

func (s *stubAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubAI) Chat(ctx context.Context, systemPrompt string, turns []model.ChatTurn) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubAI) IsEnabled() bool {
	return s.enabled
}

func newTestScanService(provider SearchProvider, ai AIClient, cfg *config.ScanConfig) *ScanService {
	searcher := NewFanoutSearcher(provider, cfg, &config.SerpConfig{Timeout: 10})
	classifier := NewClassifier(ai, NewPromptBuilder(cfg.TargetLanguage))
	return NewScanService(searcher, classifier, NewRanker(cfg), NewFallbackController(cfg))
}

// Scenario: three raw hits, classifier scores them 95/40/70; the 40 is
// dropped and the rest come back highest first.
func TestScan_RanksAndFilters(t *testing.T) {
	provider := &fakeProvider{
		respond: func(_ context.Context, _ string) ([]SerpResult, error) {
			return makeResults(model.PlatformLinkedIn, 3), nil
		},
	}
	ai := &stubAI{
		enabled: true,
		reply: `[
			{"platform": "linkedin", "author_name": "A", "content": "need a website", "intent_score": 95, "source_url": "https://linkedin.com/posts/a"},
			{"platform": "linkedin", "author_name": "B", "content": "web design tutorial", "intent_score": 40, "source_url": "https://linkedin.com/posts/b"},
			{"platform": "linkedin", "author_name": "C", "content": "who can build my site", "intent_score": 70, "source_url": "https://linkedin.com/posts/c"}
		]`,
	}
	cfg := testScanConfig()
	cfg.BroadenThreshold = 1
	svc := newTestScanService(provider, ai, cfg)

	resp := svc.Scan(context.Background(), &model.ScanRequest{
		Business:  "web design",
		Keywords:  []string{"need website"},
		Platforms: []string{"linkedin"},
	})

	require.True(t, resp.Success)
	require.Len(t, resp.Intents, 2)
	assert.Equal(t, 95, resp.Intents[0].IntentScore)
	assert.Equal(t, 70, resp.Intents[1].IntentScore)
	assert.Equal(t, RegimeReal.Message(), resp.Message)

	require.NotNil(t, resp.Diagnostics)
	assert.Equal(t, 3, resp.Diagnostics.RawResultsCount)
	assert.Equal(t, 3, resp.Diagnostics.ClassifiedCount)
	assert.Equal(t, 2, resp.Diagnostics.FinalCount)

	// Response invariants: bounds, ordering, threshold, usable links
	for i, in := range resp.Intents {
		assert.GreaterOrEqual(t, in.IntentScore, cfg.MinScore)
		assert.LessOrEqual(t, in.IntentScore, 100)
		assert.NotContains(t, in.SourceURL, "/search")
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Intents[i-1].IntentScore, in.IntentScore)
		}
	}
}

// When search yields nothing the classifier is never invoked and the
// fallback policy decides the response.
func TestScan_EmptySearchSkipsClassification(t *testing.T) {
	provider := &fakeProvider{}
	ai := &stubAI{enabled: true, reply: "[]"}
	svc := newTestScanService(provider, ai, testScanConfig())

	resp := svc.Scan(context.Background(), &model.ScanRequest{Business: "web design"})

	require.True(t, resp.Success)
	assert.Zero(t, ai.calls, "classifier must not run on zero fragments")
	assert.Empty(t, resp.Intents)
	assert.NotNil(t, resp.Intents, "intents must be an empty list, not null")
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, 0, resp.Diagnostics.RawResultsCount)
}

// A refusal reply is not an error: the parser degrades and the pipeline
// rebuilds leads from the raw hits.
func TestScan_NonJSONReplyDegrades(t *testing.T) {
	provider := &fakeProvider{
		respond: func(_ context.Context, _ string) ([]SerpResult, error) {
			return makeResults(model.PlatformReddit, 2), nil
		},
	}
	ai := &stubAI{enabled: true, reply: "Sorry, I cannot help with that."}
	cfg := testScanConfig()
	cfg.BroadenThreshold = 1
	svc := newTestScanService(provider, ai, cfg)

	resp := svc.Scan(context.Background(), &model.ScanRequest{
		Business:  "web design",
		Platforms: []string{"reddit"},
	})

	require.True(t, resp.Success)
	require.Len(t, resp.Intents, 2)
	assert.Equal(t, RegimeDegraded.Message(), resp.Message)
	for _, in := range resp.Intents {
		assert.True(t, strings.HasPrefix(in.SourceURL, "https://reddit.com/"), "degraded lead must keep the fragment's own link, got %s", in.SourceURL)
	}
	assert.Equal(t, 0, resp.Diagnostics.ClassifiedCount)
}

// An LLM transport failure takes the same degradation path.
func TestScan_ClassifierErrorDegrades(t *testing.T) {
	provider := &fakeProvider{
		respond: func(_ context.Context, _ string) ([]SerpResult, error) {
			return makeResults(model.PlatformReddit, 2), nil
		},
	}
	ai := &stubAI{enabled: true, err: context.DeadlineExceeded}
	cfg := testScanConfig()
	cfg.BroadenThreshold = 1
	svc := newTestScanService(provider, ai, cfg)

	resp := svc.Scan(context.Background(), &model.ScanRequest{Business: "web design", Platforms: []string{"reddit"}})

	require.True(t, resp.Success)
	assert.Equal(t, RegimeDegraded.Message(), resp.Message)
	assert.NotEmpty(t, resp.Intents)
}

// Empty keywords and platforms are valid: defaults apply instead of a
// validation error.
func TestScan_DefaultPlatforms(t *testing.T) {
	provider := &fakeProvider{}
	ai := &stubAI{enabled: true, reply: "[]"}
	svc := newTestScanService(provider, ai, testScanConfig())

	resp := svc.Scan(context.Background(), &model.ScanRequest{Business: "web design"})

	require.True(t, resp.Success)
	require.NotNil(t, resp.Diagnostics)

	queries := provider.recorded()
	for _, p := range model.DefaultPlatforms {
		found := false
		for _, q := range queries {
			if strings.Contains(q, p.Domain()) {
				found = true
				break
			}
		}
		assert.True(t, found, "expected a query against default platform %s", p)
	}
}

func TestResolvePlatforms(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []model.Platform
	}{
		{
			name: "aliases and case",
			in:   []string{"Twitter", "LINKEDIN"},
			want: []model.Platform{model.PlatformX, model.PlatformLinkedIn},
		},
		{
			name: "unknown dropped",
			in:   []string{"myspace", "reddit"},
			want: []model.Platform{model.PlatformReddit},
		},
		{
			name: "duplicates collapsed",
			in:   []string{"x", "twitter", "x.com"},
			want: []model.Platform{model.PlatformX},
		},
		{
			name: "empty falls back to defaults",
			in:   nil,
			want: model.DefaultPlatforms,
		},
		{
			name: "all unknown falls back to defaults",
			in:   []string{"myspace"},
			want: model.DefaultPlatforms,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolvePlatforms(tt.in))
		})
	}
}
