package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadscan/internal/config"
	"leadscan/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SearchProvider abstracts the web-search backend used by the fan-out.
// Implementations may use SerpAPI, another SERP service, or a test double.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]SerpResult, error)
}

// SerpResult is one organic search hit
type SerpResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SerpClient queries SerpAPI's Google engine
type SerpClient struct {
	config *config.SerpConfig
	client *resty.Client
}

// NewSerpClient creates a new SerpAPI client
func NewSerpClient(cfg *config.SerpConfig) *SerpClient {
	return &SerpClient{
		config: cfg,
		client: resty.New().SetTimeout(time.Duration(cfg.Timeout) * time.Second),
	}
}

// Search issues one search request and returns its organic results.
// A response without an organic_results array is zero results, not an error.
func (c *SerpClient) Search(ctx context.Context, query string, limit int) ([]SerpResult, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("search API is not enabled (missing API key)")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  c.config.Engine,
			"q":       query,
			"num":     strconv.Itoa(limit),
			"api_key": c.config.APIKey,
		}).
		Get(c.config.BaseURL)

	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode())
	}

	var body struct {
		OrganicResults []SerpResult `json:"organic_results"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return body.OrganicResults, nil
}

// demandPhrases are OR-ed into every platform query to bias results toward
// demand-side posts (people asking for a service, not offering one).
var demandPhrases = []string{
	`"looking for"`,
	`"need"`,
	`"recommend"`,
	`"anyone know"`,
	`"求推荐"`,
}

// PlatformQuery builds the search expression for one platform. The precise
// form scopes the site restriction to post paths; the broad form uses the
// bare domain and is issued when the precise query comes back thin.
func PlatformQuery(p model.Platform, term string, precise bool) string {
	scope := p.Domain()
	if precise {
		scope = p.SearchScope()
	}
	return fmt.Sprintf(`site:%s "%s" (%s)`, scope, term, strings.Join(demandPhrases, " OR "))
}

// FanoutSearcher issues one platform-scoped query per target platform
// concurrently and flattens the hits into raw fragments.
type FanoutSearcher struct {
	provider    SearchProvider
	cfg         *config.ScanConfig
	timeout     time.Duration
	resultCount int
}

// NewFanoutSearcher creates a new fan-out searcher
func NewFanoutSearcher(provider SearchProvider, scanCfg *config.ScanConfig, serpCfg *config.SerpConfig) *FanoutSearcher {
	resultCount := serpCfg.ResultCount
	if resultCount <= 0 {
		resultCount = scanCfg.MaxFragments
	}
	return &FanoutSearcher{
		provider:    provider,
		cfg:         scanCfg,
		timeout:     time.Duration(serpCfg.Timeout) * time.Second,
		resultCount: resultCount,
	}
}

// Collect runs the fan-out and returns the flattened, capped fragment list.
// A failing or slow platform contributes nothing; it never fails the batch.
func (f *FanoutSearcher) Collect(ctx context.Context, business string, keywords []string, platforms []model.Platform) []model.RawFragment {
	term := business
	if len(keywords) > 0 && strings.TrimSpace(keywords[0]) != "" {
		term = keywords[0]
	}

	// Each goroutine writes only to its own slot; results are merged after
	// all branches complete.
	slots := make([][]model.RawFragment, len(platforms))
	var g errgroup.Group

	for i, p := range platforms {
		i, p := i, p
		g.Go(func() error {
			slots[i] = f.searchPlatform(ctx, p, term)
			return nil
		})
	}
	_ = g.Wait() // branches never return errors

	var fragments []model.RawFragment
	for _, slot := range slots {
		fragments = append(fragments, slot...)
	}
	if len(fragments) > f.cfg.MaxFragments {
		fragments = fragments[:f.cfg.MaxFragments]
	}

	return fragments
}

// searchPlatform runs the precise query for one platform and escalates to a
// domain-only query when the precise one comes back below the threshold.
func (f *FanoutSearcher) searchPlatform(ctx context.Context, p model.Platform, term string) []model.RawFragment {
	results, err := f.searchOnce(ctx, PlatformQuery(p, term, true))
	if err != nil {
		logrus.WithFields(logrus.Fields{"platform": p, "error": err}).Warn("Platform search failed")
		return nil
	}

	if len(results) < f.cfg.BroadenThreshold {
		broad, err := f.searchOnce(ctx, PlatformQuery(p, term, false))
		if err != nil {
			logrus.WithFields(logrus.Fields{"platform": p, "error": err}).Warn("Broadened platform search failed")
		} else {
			results = broad
		}
	}

	fragments := make([]model.RawFragment, 0, len(results))
	for _, res := range results {
		if !usableFragmentLink(res.Link) {
			continue
		}
		fragments = append(fragments, model.RawFragment{
			Title:    res.Title,
			Snippet:  res.Snippet,
			Link:     res.Link,
			Platform: p,
		})
	}

	logrus.WithFields(logrus.Fields{"platform": p, "fragments": len(fragments)}).Debug("Platform search completed")
	return fragments
}

func (f *FanoutSearcher) searchOnce(ctx context.Context, query string) ([]SerpResult, error) {
	cctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.provider.Search(cctx, query, f.resultCount)
}

// usableFragmentLink reports whether a hit's link can serve as a lead's
// "view post" URL: a well-formed absolute http(s) URL that is not itself a
// search/listing page.
func usableFragmentLink(link string) bool {
	if link == "" || strings.Contains(link, "/search") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
