package app

import (
	"context"

	"github.com/praveshk/stockpulse/internal/models"
)

// RunResearch executes the full workflow for one company: collect, score,
// and summarize. Profiles that score below the usable tiers still come
// back with the fixed insufficient-data analysis rather than an error.
func (a *App) RunResearch(ctx context.Context, companyName string) (*models.CollectedProfile, *models.AnalysisResult, error) {
	profile, err := a.ResearchService.Collect(ctx, companyName)
	if err != nil {
		return nil, nil, err
	}

	if !profile.Quality.Usable() {
		a.Logger.Warn().
			Str("company", companyName).
			Str("quality", string(profile.Quality)).
			Msg("Skipping summarization for unusable profile")
	}

	analysis := a.AnalystService.Summarize(ctx, profile)
	return profile, analysis, nil
}
