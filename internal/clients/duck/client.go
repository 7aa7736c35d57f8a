// Package duck provides a web search client backed by the DuckDuckGo
// HTML endpoint. No API key is required; results are scraped from the
// lightweight HTML results page.
package duck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
)

const (
	DefaultBaseURL   = "https://html.duckduckgo.com"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 2 // requests per second, polite scraping pace

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client implements the SearchClient interface.
type Client struct {
	baseURL    string
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

// NewClient creates a new DuckDuckGo HTML search client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
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

// Text runs a free-text search and returns up to max results.
func (c *Client) Text(ctx context.Context, query string, max int) ([]models.SearchResult, error) {
	doc, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	doc.Find("div.result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if max > 0 && len(results) >= max {
			return false
		}
		title := strings.TrimSpace(sel.Find("a.result__a").Text())
		body := strings.TrimSpace(sel.Find(".result__snippet").Text())
		href, _ := sel.Find("a.result__a").Attr("href")
		if title == "" && body == "" {
			return true
		}
		results = append(results, models.SearchResult{
			Title: title,
			Body:  body,
			URL:   cleanResultURL(href),
		})
		return true
	})

	c.logger.Debug().Str("query", query).Int("results", len(results)).Msg("Text search complete")
	return results, nil
}

// News runs a news-oriented search and returns up to max articles. The
// HTML endpoint has no separate news vertical, so the query is steered
// with a news qualifier and results are mapped to articles.
func (c *Client) News(ctx context.Context, query string, max int) ([]models.NewsItem, error) {
	results, err := c.Text(ctx, query+" latest news", max)
	if err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(results))
	for _, r := range results {
		items = append(items, models.NewsItem{
			Title:   r.Title,
			Summary: r.Body,
			URL:     r.URL,
		})
	}
	return items, nil
}

// search fetches and parses one results page.
func (c *Client) search(ctx context.Context, query string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	reqURL := fmt.Sprintf("%s/html/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// cleanResultURL unwraps the redirect links the HTML endpoint emits
// ("//duckduckgo.com/l/?uddg=<encoded>") back to the target URL.
func cleanResultURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		if target, err := url.QueryUnescape(uddg); err == nil {
			return target
		}
	}
	return href
}
