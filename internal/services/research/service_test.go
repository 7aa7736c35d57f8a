package research

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
)

// --- Mocks ---

type mockStockAPI struct {
	signal *models.StockSignal
	err    error
	calls  int
}

func (m *mockStockAPI) GetQuote(_ context.Context, _ string) (*models.StockSignal, error) {
	m.calls++
	return m.signal, m.err
}

type mockSearch struct {
	textFn func(query string, max int) ([]models.SearchResult, error)
	newsFn func(query string, max int) ([]models.NewsItem, error)
}

func (m *mockSearch) Text(_ context.Context, query string, max int) ([]models.SearchResult, error) {
	if m.textFn == nil {
		return nil, nil
	}
	return m.textFn(query, max)
}

func (m *mockSearch) News(_ context.Context, query string, max int) ([]models.NewsItem, error) {
	if m.newsFn == nil {
		return nil, nil
	}
	return m.newsFn(query, max)
}

type mockWiki struct {
	summaries map[string]*models.WikiSummary
	err       error
	titles    []string
}

func (m *mockWiki) GetSummary(_ context.Context, title string) (*models.WikiSummary, error) {
	m.titles = append(m.titles, title)
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries[title], nil
}

type mockStore struct {
	profiles map[string]*models.CollectedProfile
	saved    []*models.CollectedProfile
}

func (m *mockStore) GetProfile(_ context.Context, companyName string) (*models.CollectedProfile, error) {
	if p, ok := m.profiles[companyName]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

func (m *mockStore) SaveProfile(_ context.Context, profile *models.CollectedProfile) error {
	m.saved = append(m.saved, profile)
	return nil
}

func testConfig() *common.ResearchConfig {
	return &common.ResearchConfig{
		MinPrice:         10,
		MaxPrice:         500000,
		ResultsPerQuery:  3,
		MaxNews:          5,
		SummaryMaxLength: 800,
	}
}

func verifiedSignal(company string) *models.StockSignal {
	return &models.StockSignal{
		Ticker:          "ACME",
		Company:         company,
		CurrentPrice:    "₹1,234.50",
		PriceValue:      1234.5,
		HasPrice:        true,
		Trend:           models.TrendBullish,
		Recommendation:  models.RecBuy,
		Confidence:      models.ConfidenceModerate,
		SourcesAnalyzed: 1,
		Source:          "Indian Stock API (real-time)",
		Provenance:      models.ProvenanceLiveAPI,
		Verified:        true,
	}
}

// --- ResolveStockSignal ---

func TestResolveStockSignal_AuthoritativeShortCircuit(t *testing.T) {
	api := &mockStockAPI{signal: verifiedSignal("Acme")}
	search := &mockSearch{textFn: func(query string, max int) ([]models.SearchResult, error) {
		t.Errorf("web search must not run when the API answers, got query %q", query)
		return nil, nil
	}}

	svc := NewService(api, search, &mockWiki{}, nil, testConfig(), common.NewSilentLogger())
	signal := svc.ResolveStockSignal(context.Background(), "Acme")

	if !signal.Verified {
		t.Error("expected the verified API signal")
	}
	if api.calls != 1 {
		t.Errorf("expected exactly one API call, got %d", api.calls)
	}
}

func TestResolveStockSignal_FallsBackOnAPIError(t *testing.T) {
	api := &mockStockAPI{err: errors.New("upstream down")}
	search := &mockSearch{textFn: func(query string, max int) ([]models.SearchResult, error) {
		return []models.SearchResult{
			{Title: "Acme surges", Body: "Acme stock rises to ₹1,250 on strong buy calls", URL: "https://a.example.com"},
		}, nil
	}}

	svc := NewService(api, search, &mockWiki{}, nil, testConfig(), common.NewSilentLogger())
	signal := svc.ResolveStockSignal(context.Background(), "Acme")

	if signal == nil {
		t.Fatal("resolution must never return nil")
	}
	if signal.Verified {
		t.Error("aggregated fallback must not be verified")
	}
	if signal.Provenance != models.ProvenanceWebAggregated {
		t.Errorf("provenance = %q", signal.Provenance)
	}
	if api.calls != 1 {
		t.Errorf("no retries allowed, got %d API calls", api.calls)
	}
	if signal.Trend != models.TrendBullish {
		t.Errorf("trend = %q, want bullish from snippets", signal.Trend)
	}
}

func TestResolveStockSignal_NoAPIClient(t *testing.T) {
	search := &mockSearch{textFn: func(query string, max int) ([]models.SearchResult, error) {
		return nil, nil
	}}

	svc := NewService(nil, search, &mockWiki{}, nil, testConfig(), common.NewSilentLogger())
	signal := svc.ResolveStockSignal(context.Background(), "Acme")

	if signal == nil {
		t.Fatal("expected an aggregated signal even with no evidence")
	}
	if signal.Recommendation != models.RecHold {
		t.Errorf("rec = %q, want HOLD with no evidence", signal.Recommendation)
	}
	if signal.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %q", signal.Confidence)
	}
	if signal.Ticker != "ACME" {
		t.Errorf("ticker = %q, want derived ACME", signal.Ticker)
	}
}

func TestCollectEvidence_PoolsAllQueries(t *testing.T) {
	queries := make(chan string, 16)
	search := &mockSearch{textFn: func(query string, max int) ([]models.SearchResult, error) {
		queries <- query
		if max != 3 {
			t.Errorf("results per query = %d, want 3", max)
		}
		return []models.SearchResult{{Title: "t", Body: "stock gains at ₹100", URL: "https://example.com/" + query}}, nil
	}}

	svc := NewService(nil, search, &mockWiki{}, nil, testConfig(), common.NewSilentLogger())
	evidence := svc.collectEvidence(context.Background(), "Acme")
	close(queries)

	var seen []string
	for q := range queries {
		seen = append(seen, q)
	}
	if len(seen) != len(stockQueries) {
		t.Errorf("expected %d queries, got %d", len(stockQueries), len(seen))
	}
	if len(evidence) != len(stockQueries) {
		t.Errorf("expected evidence from each query, got %d", len(evidence))
	}

	want := []string{
		"Acme stock price today INR",
		"Acme share price live",
		"Acme stock buy or sell recommendation",
		"Acme stock forecast",
	}
	sort.Strings(seen)
	sort.Strings(want)
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("query = %q, want %q", seen[i], want[i])
		}
	}
}

// --- Collect ---

func TestCollect_AssemblesProfile(t *testing.T) {
	api := &mockStockAPI{signal: verifiedSignal("Acme")}
	wiki := &mockWiki{summaries: map[string]*models.WikiSummary{
		"Acme": {Title: "Acme", Description: "Acme is an Indian conglomerate.", URL: "https://en.wikipedia.org/wiki/Acme"},
	}}
	search := &mockSearch{
		textFn: func(query string, max int) ([]models.SearchResult, error) {
			return []models.SearchResult{{Title: "Acme", URL: "https://acme.example.com"}}, nil
		},
		newsFn: func(query string, max int) ([]models.NewsItem, error) {
			return []models.NewsItem{{Title: "Acme wins order", Summary: "s", URL: "https://news.example.com/1"}}, nil
		},
	}
	store := &mockStore{profiles: map[string]*models.CollectedProfile{}}

	svc := NewService(api, search, wiki, store, testConfig(), common.NewSilentLogger())
	profile, err := svc.Collect(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if profile.Description == "" {
		t.Error("expected a description")
	}
	if profile.OfficialURL != "https://acme.example.com" {
		t.Errorf("official url = %q", profile.OfficialURL)
	}
	if len(profile.News) != 1 {
		t.Errorf("news = %v", profile.News)
	}
	if profile.Stock == nil || !profile.Stock.Verified {
		t.Error("expected the verified stock signal")
	}
	// description +2, news +2, price +2, >=3 citations +1
	if profile.Quality != models.QualityHigh {
		t.Errorf("quality = %q, want high", profile.Quality)
	}
	if len(store.saved) != 1 {
		t.Errorf("expected profile to be cached, saved %d", len(store.saved))
	}

	// Citation order: background, news links, stock line.
	if len(profile.Sources) != 3 {
		t.Fatalf("sources = %v", profile.Sources)
	}
	if profile.Sources[0] != "Wikipedia: https://en.wikipedia.org/wiki/Acme" {
		t.Errorf("first citation = %q", profile.Sources[0])
	}
	if profile.Sources[1] != "News: https://news.example.com/1" {
		t.Errorf("second citation = %q", profile.Sources[1])
	}
	if profile.Sources[2] != "Indian Stock API (real-time)" {
		t.Errorf("third citation = %q", profile.Sources[2])
	}
}

func TestBuildCitations_CapsNewsAndSkipsOfficialSite(t *testing.T) {
	profile := &models.CollectedProfile{
		DescriptionURL: "https://en.wikipedia.org/wiki/Acme",
		OfficialURL:    "https://acme.example.com",
		News: []models.NewsItem{
			{URL: "https://news.example.com/1"},
			{URL: ""},
			{URL: "https://news.example.com/2"},
			{URL: "https://news.example.com/3"},
			{URL: "https://news.example.com/4"},
		},
		Stock: &models.StockSignal{Source: "Web search (2 sources)"},
	}

	got := buildCitations(profile)
	want := []string{
		"Wikipedia: https://en.wikipedia.org/wiki/Acme",
		"News: https://news.example.com/1",
		"News: https://news.example.com/2",
		"News: https://news.example.com/3",
		"Web search (2 sources)",
	}
	if len(got) != len(want) {
		t.Fatalf("citations = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("citation[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, s := range got {
		if strings.Contains(s, "acme.example.com") {
			t.Errorf("official website must not be cited, got %q", s)
		}
	}
}

func TestCollect_TitleVariants(t *testing.T) {
	wiki := &mockWiki{summaries: map[string]*models.WikiSummary{
		"Acme corporation": {Title: "Acme corporation", Description: "The company.", URL: "https://en.wikipedia.org/wiki/Acme_Corporation"},
	}}

	svc := NewService(nil, &mockSearch{}, wiki, nil, testConfig(), common.NewSilentLogger())
	summary := svc.lookupDescription(context.Background(), "Acme")

	if summary == nil {
		t.Fatal("expected the corporation variant to resolve")
	}
	want := []string{"Acme", "Acme company", "Acme corporation"}
	if len(wiki.titles) != len(want) {
		t.Fatalf("tried titles %v, want %v", wiki.titles, want)
	}
	for i := range want {
		if wiki.titles[i] != want[i] {
			t.Errorf("variant[%d] = %q, want %q", i, wiki.titles[i], want[i])
		}
	}
}

func TestCollect_DisambiguationGuard(t *testing.T) {
	wiki := &mockWiki{summaries: map[string]*models.WikiSummary{
		"Acme": {Title: "Acme", Description: "Acme may refer to: several things.", URL: "https://en.wikipedia.org/wiki/Acme"},
	}}

	svc := NewService(nil, &mockSearch{}, wiki, nil, testConfig(), common.NewSilentLogger())
	summary := svc.lookupDescription(context.Background(), "Acme")

	if summary != nil {
		t.Errorf("disambiguation page must be discarded, got %+v", summary)
	}
}

func TestCollect_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("a", 2000)
	wiki := &mockWiki{summaries: map[string]*models.WikiSummary{
		"Acme": {Title: "Acme", Description: long, URL: "https://en.wikipedia.org/wiki/Acme"},
	}}

	svc := NewService(nil, &mockSearch{}, wiki, nil, testConfig(), common.NewSilentLogger())
	summary := svc.lookupDescription(context.Background(), "Acme")

	if summary == nil {
		t.Fatal("expected a summary")
	}
	if len(summary.Description) != 800 {
		t.Errorf("description length = %d, want 800", len(summary.Description))
	}
}

func TestCollect_SourceFailuresDegrade(t *testing.T) {
	api := &mockStockAPI{err: errors.New("down")}
	wiki := &mockWiki{err: errors.New("unreachable")}
	search := &mockSearch{
		textFn: func(query string, max int) ([]models.SearchResult, error) {
			return nil, errors.New("blocked")
		},
		newsFn: func(query string, max int) ([]models.NewsItem, error) {
			return nil, errors.New("blocked")
		},
	}

	svc := NewService(api, search, wiki, nil, testConfig(), common.NewSilentLogger())
	profile, err := svc.Collect(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("per-source failures must not error the whole collection: %v", err)
	}

	if profile.Description != "" || len(profile.News) != 0 {
		t.Error("expected degraded fields")
	}
	// The aggregator still yields a placeholder signal, but it carries
	// no price, so nothing scores.
	if profile.Quality != models.QualityInsufficient {
		t.Errorf("quality = %q, want insufficient", profile.Quality)
	}
}

func TestCollect_EmptyCompanyName(t *testing.T) {
	svc := NewService(nil, &mockSearch{}, &mockWiki{}, nil, testConfig(), common.NewSilentLogger())
	if _, err := svc.Collect(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank company name")
	}
}

func TestCollect_ServesFreshCache(t *testing.T) {
	cached := &models.CollectedProfile{
		CompanyName: "Acme",
		Description: "cached",
		Quality:     models.QualityMedium,
		CollectedAt: time.Now().UTC(),
	}
	store := &mockStore{profiles: map[string]*models.CollectedProfile{"Acme": cached}}
	wiki := &mockWiki{}

	svc := NewService(nil, &mockSearch{}, wiki, store, testConfig(), common.NewSilentLogger())
	profile, err := svc.Collect(context.Background(), "Acme")
	if err != nil {
		t.Fatal(err)
	}

	if profile.Description != "cached" {
		t.Error("expected the cached profile")
	}
	if len(wiki.titles) != 0 {
		t.Error("cache hit must not trigger collection")
	}
	if len(store.saved) != 0 {
		t.Error("cache hit must not re-save")
	}
}

func TestCollect_StaleCacheRecollects(t *testing.T) {
	stale := &models.CollectedProfile{
		CompanyName: "Acme",
		Description: "stale",
		Quality:     models.QualityMedium,
		CollectedAt: time.Now().Add(-2 * time.Hour).UTC(),
	}
	store := &mockStore{profiles: map[string]*models.CollectedProfile{"Acme": stale}}

	svc := NewService(nil, &mockSearch{}, &mockWiki{}, store, testConfig(), common.NewSilentLogger())
	profile, err := svc.Collect(context.Background(), "Acme")
	if err != nil {
		t.Fatal(err)
	}

	if profile.Description == "stale" {
		t.Error("stale cache must be recollected")
	}
	if len(store.saved) != 1 {
		t.Error("recollection must refresh the cache")
	}
}

// --- quality scoring ---

func TestScoreDataQuality(t *testing.T) {
	stock := &models.StockSignal{HasPrice: true}
	tests := []struct {
		name    string
		profile models.CollectedProfile
		want    models.QualityTier
	}{
		{"everything", models.CollectedProfile{Description: "d", News: []models.NewsItem{{}}, Stock: stock, Sources: []string{"a", "b", "c"}}, models.QualityHigh},
		{"description and news", models.CollectedProfile{Description: "d", News: []models.NewsItem{{}}}, models.QualityMedium},
		{"price only", models.CollectedProfile{Stock: stock}, models.QualityLow},
		{"citations only", models.CollectedProfile{Sources: []string{"a", "b", "c"}}, models.QualityLow},
		{"nothing", models.CollectedProfile{}, models.QualityInsufficient},
		{"stock without price", models.CollectedProfile{Stock: &models.StockSignal{}}, models.QualityInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreDataQuality(&tt.profile)
			if got != tt.want {
				t.Errorf("scoreDataQuality() = %q, want %q", got, tt.want)
			}
		})
	}
}
