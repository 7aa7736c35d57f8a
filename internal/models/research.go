// Package models defines data structures for StockPulse
package models

import (
	"time"
)

// Trend classifies price direction.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Recommendation is an analyst-style action signal.
type Recommendation string

const (
	RecStrongBuy Recommendation = "STRONG BUY"
	RecBuy       Recommendation = "BUY"
	RecHold      Recommendation = "HOLD"
	RecSell      Recommendation = "SELL"
)

// Confidence qualifies how much weight a StockSignal deserves.
// Authoritative signals use High/Moderate; aggregated signals use
// Strong/Moderate/Low depending on vote counts.
const (
	ConfidenceHigh     = "High"
	ConfidenceModerate = "Moderate"
	ConfidenceStrong   = "Strong"
	ConfidenceLow      = "Low (limited data)"
)

// Provenance records where a StockSignal came from.
type Provenance string

const (
	ProvenanceLiveAPI       Provenance = "live_api"
	ProvenanceWebAggregated Provenance = "web_aggregated"
)

// Evidence is one snippet's extracted raw signal, pre-aggregation.
// Created once per snippet by the extractor, consumed by the aggregator,
// never mutated and never persisted.
type Evidence struct {
	Prices   []float64      `json:"prices,omitempty"`    // all in-range price candidates
	Trend    Trend          `json:"trend,omitempty"`     // empty when no polarity keyword matched
	Rec      Recommendation `json:"rec,omitempty"`       // empty when no keyword matched
	SourceID string         `json:"source_id,omitempty"` // opaque snippet origin, counted not weighted
}

// HasTrendVote reports whether this snippet cast a trend vote.
func (e Evidence) HasTrendVote() bool {
	return e.Trend == TrendBullish || e.Trend == TrendBearish
}

// HasRecVote reports whether this snippet cast a recommendation vote.
func (e Evidence) HasRecVote() bool {
	return e.Rec != ""
}

// Empty reports whether the snippet yielded no signal at all.
func (e Evidence) Empty() bool {
	return len(e.Prices) == 0 && !e.HasTrendVote() && !e.HasRecVote()
}

// StockSignal is the single resolved stock verdict for one company request.
// Immutable once produced; exactly one exists per request.
type StockSignal struct {
	Ticker          string         `json:"ticker"`
	Company         string         `json:"company"`
	CurrentPrice    string         `json:"current_price"`              // display string, e.g. "₹1,234.50"
	PriceValue      float64        `json:"price_value,omitempty"`      // raw price, 0 when unavailable
	HasPrice        bool           `json:"has_price"`
	PriceChangePct  string         `json:"price_change_pct"`
	ChangePctValue  float64        `json:"change_pct_value,omitempty"`
	Volume          string         `json:"volume,omitempty"`
	Trend           Trend          `json:"trend"`
	Recommendation  Recommendation `json:"recommendation"`
	Confidence      string         `json:"confidence"`
	SourcesAnalyzed int            `json:"sources_analyzed"` // always >= 1
	Source          string         `json:"source"`           // human-readable origin line
	Provenance      Provenance     `json:"provenance"`
	Verified        bool           `json:"verified"` // true only for the authoritative API
}

// NewsItem is one news search result.
type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Date    string `json:"date"`
}

// SearchResult is one text search result.
type SearchResult struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// WikiSummary is an encyclopedia page summary.
type WikiSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// QualityTier is the ordinal data-sufficiency rating gating summarization.
type QualityTier string

const (
	QualityHigh         QualityTier = "high"
	QualityMedium       QualityTier = "medium"
	QualityLow          QualityTier = "low"
	QualityInsufficient QualityTier = "insufficient"
	QualityError        QualityTier = "error"
)

// Usable reports whether downstream summarization may run on this tier.
func (q QualityTier) Usable() bool {
	return q != QualityInsufficient && q != QualityError && q != ""
}

// CollectedProfile is the aggregate research bundle for one company request.
// Created fresh per request, never shared across requests.
type CollectedProfile struct {
	CompanyName     string       `json:"company_name"`
	Description     string       `json:"description,omitempty"`
	DescriptionURL  string       `json:"description_url,omitempty"`
	OfficialURL     string       `json:"official_url,omitempty"`
	News            []NewsItem   `json:"news,omitempty"`
	Stock           *StockSignal `json:"stock,omitempty"`
	Sources         []string     `json:"sources"` // ordered citation strings
	Quality         QualityTier  `json:"quality"`
	CollectionError string       `json:"collection_error,omitempty"`
	CollectedAt     time.Time    `json:"collected_at"`
}

// HasPrice reports whether the profile carries a resolved price.
func (p *CollectedProfile) HasPrice() bool {
	return p.Stock != nil && p.Stock.HasPrice
}

// AnalysisResult is the summarization output handed back to the caller.
type AnalysisResult struct {
	ExecutiveSummary   string      `json:"executive_summary"`
	MarketInsights     string      `json:"market_insights"`
	RisksOpportunities string      `json:"risks_opportunities"`
	DataSources        string      `json:"data_sources"`
	DataQuality        QualityTier `json:"data_quality"`
	GeneratedAt        time.Time   `json:"generated_at"`
}
