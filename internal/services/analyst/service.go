// Package analyst turns collected research profiles into readable
// investor-facing analysis, with deterministic fallbacks when the
// language model is unavailable or answers badly.
package analyst

import (
	"context"
	"strings"
	"time"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/interfaces"
	"github.com/praveshk/stockpulse/internal/models"
)

// maxCitedSources caps how many citations the analysis lists.
const maxCitedSources = 5

// Service implements AnalystService.
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new analyst service. gemini may be nil when no
// API key is configured; every section then uses its fallback text.
func NewService(gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		gemini: gemini,
		logger: logger,
		now:    time.Now,
	}
}

// Summarize generates the three analysis sections for a profile.
// Profiles below the usable quality tiers yield the fixed
// insufficient-data result without touching the model.
func (s *Service) Summarize(ctx context.Context, profile *models.CollectedProfile) *models.AnalysisResult {
	if profile == nil || !profile.Quality.Usable() {
		return s.insufficientResult(profile)
	}

	result := &models.AnalysisResult{
		ExecutiveSummary:   s.generate(ctx, summaryPrompt(profile), summaryFallback(profile)),
		MarketInsights:     s.generate(ctx, insightsPrompt(profile), insightsFallback(profile)),
		RisksOpportunities: s.generate(ctx, risksPrompt(profile), risksFallback(profile)),
		DataSources:        citedSources(profile),
		DataQuality:        profile.Quality,
		GeneratedAt:        s.now().UTC(),
	}
	return result
}

// generate runs one prompt through the model and falls back to the
// deterministic text on any failure or off-topic answer.
func (s *Service) generate(ctx context.Context, prompt, fallback string) string {
	if s.gemini == nil {
		return fallback
	}

	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Generation failed, using fallback")
		return fallback
	}

	text = strings.TrimSpace(text)
	if text == "" || isOffTopic(text) {
		s.logger.Warn().Msg("Generated text rejected, using fallback")
		return fallback
	}
	return text
}

// isOffTopic catches answers where the model slipped into listing page
// meanings instead of analyzing the company.
func isOffTopic(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "can refer to") || strings.Contains(lower, "may refer to")
}

// citedSources lists the leading citations, one per line.
func citedSources(profile *models.CollectedProfile) string {
	sources := profile.Sources
	if len(sources) > maxCitedSources {
		sources = sources[:maxCitedSources]
	}
	return strings.Join(sources, "\n")
}

// insufficientResult is the fixed output for unusable profiles.
func (s *Service) insufficientResult(profile *models.CollectedProfile) *models.AnalysisResult {
	quality := models.QualityInsufficient
	reason := "Insufficient data was collected to produce an analysis."
	if profile != nil {
		if profile.Quality != "" {
			quality = profile.Quality
		}
		if profile.CollectionError != "" {
			reason = "Data collection failed: " + profile.CollectionError
		}
	}

	return &models.AnalysisResult{
		ExecutiveSummary:   reason,
		MarketInsights:     "No market insights are available.",
		RisksOpportunities: "No risk assessment is available.",
		DataSources:        "Limited sources found",
		DataQuality:        quality,
		GeneratedAt:        s.now().UTC(),
	}
}
