package research

import (
	"context"
	"fmt"
	"sync"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
	"github.com/praveshk/stockpulse/internal/signals"
)

// stockQueries are the web search angles pooled for consensus when the
// authoritative API cannot answer.
var stockQueries = []string{
	"%s stock price today INR",
	"%s share price live",
	"%s stock buy or sell recommendation",
	"%s stock forecast",
}

// ResolveStockSignal resolves the single stock verdict for a company.
// The authoritative API is tried exactly once; any failure falls through
// to web-search aggregation. Never returns nil.
func (s *Service) ResolveStockSignal(ctx context.Context, companyName string) *models.StockSignal {
	if s.stockAPI != nil {
		signal, err := s.stockAPI.GetQuote(ctx, companyName)
		if err == nil && signal != nil {
			s.logger.Debug().
				Str("company", companyName).
				Str("ticker", signal.Ticker).
				Msg("Authoritative quote resolved")
			return signal
		}
		s.logger.Warn().Err(err).Str("company", companyName).Msg("Authoritative quote failed, falling back to web aggregation")
	}

	evidence := s.collectEvidence(ctx, companyName)
	return signals.Aggregate(evidence, companyName, common.DeriveTicker(companyName))
}

// collectEvidence runs all stock queries concurrently and extracts a
// signal from every snippet. Query failures contribute nothing.
func (s *Service) collectEvidence(ctx context.Context, companyName string) []models.Evidence {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var evidence []models.Evidence

	for i, format := range stockQueries {
		wg.Add(1)
		go func(queryIdx int, query string) {
			defer wg.Done()

			results, err := s.search.Text(ctx, query, s.resultsPerQuery)
			if err != nil {
				s.logger.Warn().Err(err).Str("query", query).Msg("Stock search query failed")
				return
			}

			for resultIdx, result := range results {
				sourceID := result.URL
				if sourceID == "" {
					sourceID = fmt.Sprintf("q%d-r%d", queryIdx, resultIdx)
				}
				ev := s.extractor.Extract(result.Body, result.Title, sourceID)
				if ev.Empty() {
					continue
				}
				mu.Lock()
				evidence = append(evidence, ev)
				mu.Unlock()
			}
		}(i, fmt.Sprintf(format, companyName))
	}

	wg.Wait()
	return evidence
}
