// Package indianapi provides a client for the Indian stock market API,
// the authoritative source for live NSE/BSE quotes.
package indianapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
)

const (
	DefaultBaseURL   = "https://stock.indianapi.in"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// exchangePrice is a per-exchange price pair. The API keys it by
// exchange code, NSE preferred over BSE.
type exchangePrice struct {
	NSE flexFloat64 `json:"NSE"`
	BSE flexFloat64 `json:"BSE"`
}

// flexPct handles percentChange payloads that arrive either as a bare
// scalar or as a per-exchange map.
type flexPct struct {
	value float64
	set   bool
}

func (f *flexPct) UnmarshalJSON(data []byte) error {
	var scalar flexFloat64
	if err := json.Unmarshal(data, &scalar); err == nil {
		f.value = float64(scalar)
		f.set = true
		return nil
	}
	var byExchange exchangePrice
	if err := json.Unmarshal(data, &byExchange); err == nil {
		if byExchange.NSE != 0 {
			f.value = float64(byExchange.NSE)
		} else {
			f.value = float64(byExchange.BSE)
		}
		f.set = true
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into percent change", string(data))
}

// quoteResponse mirrors the /stock payload. Only the fields the signal
// needs are mapped; the API returns far more.
type quoteResponse struct {
	Error             string         `json:"error"`
	Message           string         `json:"message"`
	CompanyName       string         `json:"companyName"`
	Symbol            string         `json:"symbol"`
	CurrentPrice      *exchangePrice `json:"currentPrice"`
	Price             flexFloat64    `json:"price"`
	LastPrice         flexFloat64    `json:"lastPrice"`
	PercentChange     flexPct        `json:"percentChange"`
	TotalTradedVolume string         `json:"totalTradedVolume"`
}

// Client implements the StockAPIClient interface.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Indian stock API client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("indian API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// GetQuote retrieves a live quote for a company by name and converts it
// to a verified StockSignal. Any failure is returned as an error so the
// caller can fall back to web aggregation.
func (c *Client) GetQuote(ctx context.Context, companyName string) (*models.StockSignal, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("name", companyName)
	reqURL := fmt.Sprintf("%s/stock?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("company", companyName).Msg("Indian API quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/stock",
		}
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if quote.Error != "" {
		msg := quote.Error
		if quote.Message != "" {
			msg += ": " + quote.Message
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Endpoint:   "/stock",
		}
	}

	return c.buildSignal(companyName, &quote)
}

// buildSignal converts a raw quote into the verified signal shape.
// NSE is preferred; BSE fills in when the NSE figure is missing, and
// the flat price/lastPrice fields are a last resort.
func (c *Client) buildSignal(companyName string, quote *quoteResponse) (*models.StockSignal, error) {
	price := resolvePrice(quote)
	if price <= 0 {
		return nil, fmt.Errorf("no usable price for %q in API response", companyName)
	}

	pct := quote.PercentChange.value

	signal := &models.StockSignal{
		Ticker:          resolveTicker(quote.Symbol, companyName),
		Company:         companyName,
		CurrentPrice:    common.FormatINR(price),
		PriceValue:      price,
		HasPrice:        true,
		PriceChangePct:  common.FormatPct(pct),
		ChangePctValue:  pct,
		Volume:          quote.TotalTradedVolume,
		Trend:           trendFromChange(pct),
		Recommendation:  recommendationFromChange(pct),
		Confidence:      confidenceFromChange(pct),
		SourcesAnalyzed: 1,
		Source:          "Indian Stock API (real-time)",
		Provenance:      models.ProvenanceLiveAPI,
		Verified:        true,
	}
	return signal, nil
}

func resolvePrice(quote *quoteResponse) float64 {
	if quote.CurrentPrice != nil {
		if quote.CurrentPrice.NSE != 0 {
			return float64(quote.CurrentPrice.NSE)
		}
		if quote.CurrentPrice.BSE != 0 {
			return float64(quote.CurrentPrice.BSE)
		}
	}
	if quote.Price != 0 {
		return float64(quote.Price)
	}
	return float64(quote.LastPrice)
}

// resolveTicker falls back to a symbol derived from the company name
// when the API omits one.
func resolveTicker(symbol, companyName string) string {
	if symbol != "" {
		return strings.ToUpper(symbol)
	}
	return common.DeriveTicker(companyName)
}

func trendFromChange(pct float64) models.Trend {
	switch {
	case pct > 0:
		return models.TrendBullish
	case pct < 0:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// recommendationFromChange maps the day's move to an action signal.
// Thresholds are in percent.
func recommendationFromChange(pct float64) models.Recommendation {
	switch {
	case pct > 2:
		return models.RecStrongBuy
	case pct > 0:
		return models.RecBuy
	case pct > -2:
		return models.RecHold
	default:
		return models.RecSell
	}
}

func confidenceFromChange(pct float64) string {
	if pct > 2 || pct < -2 {
		return models.ConfidenceHigh
	}
	return models.ConfidenceModerate
}
