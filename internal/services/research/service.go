// Package research implements the multi-source company research pipeline:
// encyclopedia background, news, official website, and the resolved stock
// signal, scored for data sufficiency.
package research

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/interfaces"
	"github.com/praveshk/stockpulse/internal/models"
	"github.com/praveshk/stockpulse/internal/signals"
)

// disambiguationMarkers identify encyclopedia pages that list multiple
// meanings instead of describing one company.
var disambiguationMarkers = []string{"can refer to", "may refer to"}

// Service implements ResearchService.
type Service struct {
	stockAPI  interfaces.StockAPIClient
	search    interfaces.SearchClient
	wiki      interfaces.EncyclopediaClient
	store     interfaces.ProfileStore
	extractor *signals.Extractor
	logger    *common.Logger

	resultsPerQuery int
	maxNews         int
	summaryMaxLen   int
	now             func() time.Time // injectable clock for testing
}

// NewService creates a new research service.
// stockAPI may be nil when no API key is configured; resolution then goes
// straight to web aggregation. store may be nil to disable caching.
func NewService(stockAPI interfaces.StockAPIClient, search interfaces.SearchClient, wiki interfaces.EncyclopediaClient, store interfaces.ProfileStore, cfg *common.ResearchConfig, logger *common.Logger) *Service {
	s := &Service{
		stockAPI:        stockAPI,
		search:          search,
		wiki:            wiki,
		store:           store,
		logger:          logger,
		resultsPerQuery: cfg.ResultsPerQuery,
		maxNews:         cfg.MaxNews,
		summaryMaxLen:   cfg.SummaryMaxLength,
		now:             time.Now,
	}

	var opts []signals.ExtractorOption
	if cfg.MinPrice > 0 || cfg.MaxPrice > 0 {
		opts = append(opts, signals.WithPriceBounds(cfg.MinPrice, cfg.MaxPrice))
	}
	s.extractor = signals.NewExtractor(opts...)
	return s
}

// Collect gathers all research data for a company concurrently and returns
// the scored profile. Failures in individual sources degrade to absent
// fields; only a panic in the pipeline produces the error tier.
func (s *Service) Collect(ctx context.Context, companyName string) (profile *models.CollectedProfile, err error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}

	if cached := s.cachedProfile(ctx, companyName); cached != nil {
		return cached, nil
	}

	profile = &models.CollectedProfile{
		CompanyName: companyName,
		CollectedAt: s.now().UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("company", companyName).Interface("panic", r).Msg("Collection panicked")
			profile.Quality = models.QualityError
			profile.CollectionError = fmt.Sprintf("collection failed: %v", r)
			err = nil
		}
	}()

	var wg sync.WaitGroup
	var mu sync.Mutex

	collect := func(name string, fn func(ctx context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error().Str("company", companyName).Str("collector", name).Interface("panic", r).Msg("Collector panicked")
					mu.Lock()
					profile.Quality = models.QualityError
					profile.CollectionError = fmt.Sprintf("%s collector failed: %v", name, r)
					mu.Unlock()
				}
			}()
			fn(ctx)
		}()
	}

	collect("description", func(ctx context.Context) {
		summary := s.lookupDescription(ctx, companyName)
		if summary == nil {
			return
		}
		mu.Lock()
		profile.Description = summary.Description
		profile.DescriptionURL = summary.URL
		mu.Unlock()
	})

	collect("website", func(ctx context.Context) {
		url := s.lookupOfficialSite(ctx, companyName)
		mu.Lock()
		profile.OfficialURL = url
		mu.Unlock()
	})

	collect("news", func(ctx context.Context) {
		news, err := s.search.News(ctx, companyName+" India stock market news", s.maxNews)
		if err != nil {
			s.logger.Warn().Err(err).Str("company", companyName).Msg("News search failed")
			return
		}
		mu.Lock()
		profile.News = news
		mu.Unlock()
	})

	collect("stock", func(ctx context.Context) {
		signal := s.ResolveStockSignal(ctx, companyName)
		mu.Lock()
		profile.Stock = signal
		mu.Unlock()
	})

	wg.Wait()

	if profile.Quality != models.QualityError {
		profile.Sources = buildCitations(profile)
		profile.Quality = scoreDataQuality(profile)
	}

	if s.store != nil {
		if err := s.store.SaveProfile(ctx, profile); err != nil {
			s.logger.Warn().Err(err).Str("company", companyName).Msg("Failed to cache profile")
		}
	}

	s.logger.Info().
		Str("company", companyName).
		Str("quality", string(profile.Quality)).
		Int("sources", len(profile.Sources)).
		Msg("Collection complete")

	return profile, nil
}

// cachedProfile returns a fresh, usable cached profile or nil.
func (s *Service) cachedProfile(ctx context.Context, companyName string) *models.CollectedProfile {
	if s.store == nil {
		return nil
	}
	cached, err := s.store.GetProfile(ctx, companyName)
	if err != nil || cached == nil {
		return nil
	}
	if !common.IsFresh(cached.CollectedAt, common.FreshnessProfile) {
		return nil
	}
	if !cached.Quality.Usable() {
		return nil
	}
	s.logger.Debug().Str("company", companyName).Msg("Serving cached profile")
	return cached
}

// lookupDescription tries the company name plus common title variants
// until one resolves to a non-disambiguation page.
func (s *Service) lookupDescription(ctx context.Context, companyName string) *models.WikiSummary {
	variants := []string{
		companyName,
		companyName + " company",
		companyName + " corporation",
	}

	for _, variant := range variants {
		summary, err := s.wiki.GetSummary(ctx, variant)
		if err != nil {
			s.logger.Warn().Err(err).Str("title", variant).Msg("Encyclopedia lookup failed")
			continue
		}
		if summary == nil {
			continue
		}
		if isDisambiguation(summary.Description) {
			s.logger.Debug().Str("title", variant).Msg("Skipping disambiguation page")
			continue
		}
		summary.Description = truncate(summary.Description, s.summaryMaxLen)
		return summary
	}
	return nil
}

// lookupOfficialSite returns the top search hit for the company website.
func (s *Service) lookupOfficialSite(ctx context.Context, companyName string) string {
	results, err := s.search.Text(ctx, companyName+" official website", 1)
	if err != nil {
		s.logger.Warn().Err(err).Str("company", companyName).Msg("Website lookup failed")
		return ""
	}
	if len(results) == 0 {
		return ""
	}
	return results[0].URL
}

// maxNewsCitations caps how many news links enter the citation list.
const maxNewsCitations = 3

// buildCitations assembles the ordered source list: background first,
// then the leading news links, then the stock origin line. The official
// website is recorded on the profile but not cited.
func buildCitations(profile *models.CollectedProfile) []string {
	var sources []string
	if profile.DescriptionURL != "" {
		sources = append(sources, "Wikipedia: "+profile.DescriptionURL)
	}
	cited := 0
	for _, item := range profile.News {
		if cited == maxNewsCitations {
			break
		}
		if item.URL != "" {
			sources = append(sources, "News: "+item.URL)
			cited++
		}
	}
	if profile.Stock != nil {
		sources = append(sources, profile.Stock.Source)
	}
	return sources
}

func isDisambiguation(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range disambiguationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// truncate caps text at max runes.
func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
