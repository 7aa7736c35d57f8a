// Package interfaces defines service contracts for StockPulse
package interfaces

import (
	"context"

	"github.com/praveshk/stockpulse/internal/models"
)

// StockAPIClient provides access to the authoritative NSE/BSE quote API.
type StockAPIClient interface {
	// GetQuote retrieves a live quote for a company by name. A non-200
	// response, malformed payload, or an error field in the body all
	// surface as an error; callers degrade to web aggregation.
	GetQuote(ctx context.Context, companyName string) (*models.StockSignal, error)
}

// SearchClient provides text and news search over the public web.
type SearchClient interface {
	// Text runs a free-text search and returns up to max results.
	Text(ctx context.Context, query string, max int) ([]models.SearchResult, error)

	// News runs a news search and returns up to max articles.
	News(ctx context.Context, query string, max int) ([]models.NewsItem, error)
}

// EncyclopediaClient provides access to encyclopedia page summaries.
type EncyclopediaClient interface {
	// GetSummary fetches the summary for a page title. Returns
	// (nil, nil) when the page does not exist.
	GetSummary(ctx context.Context, title string) (*models.WikiSummary, error)
}

// GeminiClient provides access to the Gemini API for summarization.
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
