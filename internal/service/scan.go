package service

import (
	"context"
	"time"

	"leadscan/internal/model"

	"github.com/sirupsen/logrus"
)

// ScanService runs the full lead-scan pipeline: concurrent platform search,
// LLM classification, ranking, and the fallback chain. Each scan is a fresh,
// independent run; nothing is shared across requests.
type ScanService struct {
	searcher   *FanoutSearcher
	classifier *Classifier
	ranker     *Ranker
	fallback   *FallbackController
}

// NewScanService creates a new scan service
func NewScanService(searcher *FanoutSearcher, classifier *Classifier, ranker *Ranker, fallback *FallbackController) *ScanService {
	return &ScanService{
		searcher:   searcher,
		classifier: classifier,
		ranker:     ranker,
		fallback:   fallback,
	}
}

// Scan executes one pipeline run. Upstream failures are absorbed into the
// regime message and diagnostics; the response envelope is always well formed.
func (s *ScanService) Scan(ctx context.Context, req *model.ScanRequest) *model.ScanResponse {
	start := time.Now()

	platforms := resolvePlatforms(req.Platforms)
	fallbackPlatform := platforms[0]

	fragments := s.searcher.Collect(ctx, req.Business, req.Keywords, platforms)

	var candidates []model.CandidateIntent
	classificationFailed := false
	if len(fragments) > 0 {
		candidates, classificationFailed = s.classifier.Classify(ctx, req.Business, req.Keywords, fragments)
	}

	intents := s.ranker.Rank(candidates, fallbackPlatform)

	regime := RegimeReal
	if len(intents) == 0 {
		intents, regime = s.fallback.Build(req.Business, platforms, fragments)
	}
	if intents == nil {
		intents = []model.Intent{}
	}

	logrus.WithFields(logrus.Fields{
		"business":              req.Business,
		"platforms":             platforms,
		"raw_results":           len(fragments),
		"classified":            len(candidates),
		"final":                 len(intents),
		"classification_failed": classificationFailed,
		"regime":                regime,
		"took_ms":               time.Since(start).Milliseconds(),
	}).Info("Scan completed")

	return &model.ScanResponse{
		Success: true,
		Intents: intents,
		Message: regime.Message(),
		Diagnostics: &model.ScanDiagnostics{
			RawResultsCount: len(fragments),
			ClassifiedCount: len(candidates),
			FinalCount:      len(intents),
		},
	}
}

// resolvePlatforms normalizes the requested platform strings, dropping
// unrecognized ones and duplicates; an empty result falls back to the
// default platform set.
func resolvePlatforms(raw []string) []model.Platform {
	seen := make(map[model.Platform]bool, len(raw))
	platforms := make([]model.Platform, 0, len(raw))

	for _, r := range raw {
		p, ok := model.NormalizePlatform(r)
		if !ok {
			logrus.WithField("platform", r).Warn("Ignoring unrecognized platform")
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}

	if len(platforms) == 0 {
		return append([]model.Platform(nil), model.DefaultPlatforms...)
	}
	return platforms
}
