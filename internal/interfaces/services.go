package interfaces

import (
	"context"

	"github.com/praveshk/stockpulse/internal/models"
)

// ResearchService collects and reconciles company research data.
type ResearchService interface {
	// Collect gathers encyclopedia, news, and stock data for a company
	// and returns the scored profile. Individual source failures degrade
	// to absent fields; only a wholesale failure sets the error tier.
	Collect(ctx context.Context, companyName string) (*models.CollectedProfile, error)

	// ResolveStockSignal resolves the single stock verdict for a company:
	// authoritative API first, web-search consensus as fallback.
	ResolveStockSignal(ctx context.Context, companyName string) *models.StockSignal
}

// AnalystService turns a collected profile into a readable analysis.
type AnalystService interface {
	// Summarize generates the analysis for a profile. Profiles with an
	// unusable quality tier yield the fixed insufficient-data result.
	Summarize(ctx context.Context, profile *models.CollectedProfile) *models.AnalysisResult
}

// ProfileStore caches the most recent collected profile per company.
type ProfileStore interface {
	// GetProfile returns the cached profile for a company, or an error
	// when none exists.
	GetProfile(ctx context.Context, companyName string) (*models.CollectedProfile, error)

	// SaveProfile stores a profile, replacing any previous one.
	SaveProfile(ctx context.Context, profile *models.CollectedProfile) error
}
