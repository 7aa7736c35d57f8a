// Package signals implements snippet signal extraction and the
// multi-source consensus engine.
package signals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/praveshk/stockpulse/internal/models"
)

// Default plausible stock price bounds (exclusive).
const (
	DefaultMinPrice = 10
	DefaultMaxPrice = 500000
)

// pricePatterns match currency-qualified numeric tokens: "₹1,234.50",
// "Rs. 1234", "INR 95.20".
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)₹\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)rs\.?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)inr\s*([\d,]+(?:\.\d+)?)`),
}

// Trend and recommendation keyword tables. Order matters: rules are
// evaluated top to bottom and the first matching set wins, so bullish
// beats bearish when both appear, and BUY beats SELL beats HOLD.
var trendRules = []struct {
	keywords []string
	outcome  models.Trend
}{
	{[]string{"rises", "gains", "jumps", "surges", "up", "rallies", "bullish", "positive", "growth"}, models.TrendBullish},
	{[]string{"falls", "drops", "declines", "down", "tumbles", "bearish", "negative", "loss"}, models.TrendBearish},
}

var recRules = []struct {
	keywords []string
	outcome  models.Recommendation
}{
	{[]string{"strong buy", "buy rating", "outperform", "accumulate"}, models.RecBuy},
	{[]string{"sell rating", "underperform", "avoid", "reduce"}, models.RecSell},
	{[]string{"hold", "neutral", "maintain"}, models.RecHold},
}

// Extractor pulls raw signals out of free-text snippets. Pure and
// deterministic, safe for concurrent use.
type Extractor struct {
	minPrice float64
	maxPrice float64
}

// ExtractorOption configures the extractor
type ExtractorOption func(*Extractor)

// WithPriceBounds sets the exclusive plausible price range.
func WithPriceBounds(min, max float64) ExtractorOption {
	return func(e *Extractor) {
		e.minPrice = min
		e.maxPrice = max
	}
}

// NewExtractor creates a new extractor with default price bounds.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		minPrice: DefaultMinPrice,
		maxPrice: DefaultMaxPrice,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract pulls zero-or-more raw signals from one snippet. The body and
// title are matched case-insensitively; a snippet may yield multiple price
// candidates but at most one trend vote and one recommendation vote.
// Prices are scanned in the body only; trend and recommendation keywords
// match against body and title combined.
func (e *Extractor) Extract(body, title, sourceID string) models.Evidence {
	lowerBody := strings.ToLower(body)
	text := lowerBody + " " + strings.ToLower(title)

	return models.Evidence{
		Prices:   e.extractPrices(lowerBody),
		Trend:    extractTrend(text),
		Rec:      extractRecommendation(text),
		SourceID: sourceID,
	}
}

// extractPrices returns every in-range price candidate in the text.
// Out-of-range values are discarded here and never reach the aggregator.
func (e *Extractor) extractPrices(text string) []float64 {
	var prices []float64
	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(match[1], ",", "")
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if price > e.minPrice && price < e.maxPrice {
				prices = append(prices, price)
			}
		}
	}
	return prices
}

// extractTrend returns the first matching polarity, bullish checked first.
func extractTrend(text string) models.Trend {
	for _, rule := range trendRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.outcome
			}
		}
	}
	return ""
}

// extractRecommendation returns at most one vote, BUY set checked first.
func extractRecommendation(text string) models.Recommendation {
	for _, rule := range recRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.outcome
			}
		}
	}
	return ""
}
