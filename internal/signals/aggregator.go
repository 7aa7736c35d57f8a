package signals

import (
	"fmt"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
)

// Aggregate reduces all collected evidence to one consensus StockSignal.
// Pure and synchronous, no I/O. Invoked only when the authoritative
// source is unavailable.
//
// Tie-break policy:
//   - trend: strict majority, any tie (including 0-0) is neutral
//   - recommendation: BUY wins ties against both SELL and HOLD; SELL must
//     strictly beat BUY; HOLD is the fallback for everything else
func Aggregate(evidence []models.Evidence, companyName, ticker string) *models.StockSignal {
	signal := &models.StockSignal{
		Ticker:     ticker,
		Company:    companyName,
		Provenance: models.ProvenanceWebAggregated,
		Verified:   false,
	}

	var prices []float64
	var bullish, bearish int
	var buy, sell, hold int
	seen := make(map[string]struct{})

	for _, ev := range evidence {
		prices = append(prices, ev.Prices...)

		switch ev.Trend {
		case models.TrendBullish:
			bullish++
		case models.TrendBearish:
			bearish++
		}

		switch ev.Rec {
		case models.RecBuy:
			buy++
		case models.RecSell:
			sell++
		case models.RecHold:
			hold++
		}

		if ev.SourceID != "" {
			seen[ev.SourceID] = struct{}{}
		}
	}

	// Price: mean over every candidate, not deduplicated by value.
	if len(prices) > 0 {
		sum := 0.0
		for _, p := range prices {
			sum += p
		}
		avg := sum / float64(len(prices))
		signal.PriceValue = avg
		signal.HasPrice = true
		signal.CurrentPrice = common.FormatINR(avg)
	} else {
		signal.CurrentPrice = common.PriceUnavailable
	}

	// Trend: majority vote, ties neutral.
	switch {
	case bullish > bearish:
		signal.Trend = models.TrendBullish
	case bearish > bullish:
		signal.Trend = models.TrendBearish
	default:
		signal.Trend = models.TrendNeutral
	}

	// Recommendation: asymmetric majority vote.
	switch {
	case buy+sell+hold == 0:
		signal.Recommendation = models.RecHold
		signal.Confidence = models.ConfidenceLow
	case buy >= sell && buy >= hold:
		signal.Recommendation = models.RecBuy
		signal.Confidence = voteConfidence(buy)
	case sell > buy && sell >= hold:
		signal.Recommendation = models.RecSell
		signal.Confidence = voteConfidence(sell)
	default:
		signal.Recommendation = models.RecHold
		signal.Confidence = models.ConfidenceModerate
	}

	// Rough magnitude estimate from the vote imbalance; not a real
	// percent change, and labelled as such.
	if bullish+bearish > 0 {
		diff := bullish - bearish
		if diff < 0 {
			diff = -diff
		}
		signal.PriceChangePct = fmt.Sprintf("~%d%% (est.)", diff)
	} else {
		signal.PriceChangePct = "N/A"
	}

	sourceCount := len(seen)
	if sourceCount < 1 {
		sourceCount = 1
	}
	signal.SourcesAnalyzed = sourceCount
	signal.Source = fmt.Sprintf("Web search (%d sources)", sourceCount)

	return signal
}

func voteConfidence(winning int) string {
	if winning > 2 {
		return models.ConfidenceStrong
	}
	return models.ConfidenceModerate
}
