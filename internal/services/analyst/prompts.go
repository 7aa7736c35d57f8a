package analyst

import (
	"fmt"
	"strings"

	"github.com/praveshk/stockpulse/internal/models"
)

// profileContext renders the collected material as prompt context.
func profileContext(profile *models.CollectedProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s\n", profile.CompanyName)

	if profile.Description != "" {
		fmt.Fprintf(&sb, "\nBackground:\n%s\n", profile.Description)
	}

	if stock := profile.Stock; stock != nil {
		fmt.Fprintf(&sb, "\nStock snapshot (%s):\n", stock.Source)
		fmt.Fprintf(&sb, "- Price: %s (change %s)\n", stock.CurrentPrice, stock.PriceChangePct)
		fmt.Fprintf(&sb, "- Trend: %s\n", stock.Trend)
		fmt.Fprintf(&sb, "- Recommendation: %s (confidence: %s)\n", stock.Recommendation, stock.Confidence)
	}

	if len(profile.News) > 0 {
		sb.WriteString("\nRecent news:\n")
		for _, item := range profile.News {
			fmt.Fprintf(&sb, "- %s", item.Title)
			if item.Summary != "" {
				fmt.Fprintf(&sb, ": %s", item.Summary)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func summaryPrompt(profile *models.CollectedProfile) string {
	return fmt.Sprintf(`You are a financial research analyst. Based on the research below, write a concise executive summary (3-4 sentences) of %s for a retail investor. Cover what the company does and its current market standing. Do not invent figures that are not in the research.

%s`, profile.CompanyName, profileContext(profile))
}

func insightsPrompt(profile *models.CollectedProfile) string {
	return fmt.Sprintf(`You are a financial research analyst. Based on the research below, write 3-4 bullet points of market insights for %s: price action, sentiment, and anything notable in the news. Do not invent figures that are not in the research.

%s`, profile.CompanyName, profileContext(profile))
}

func risksPrompt(profile *models.CollectedProfile) string {
	return fmt.Sprintf(`You are a financial research analyst. Based on the research below, list the main risks and opportunities for %s as two short bullet lists. Stay grounded in the research provided.

%s`, profile.CompanyName, profileContext(profile))
}

// summaryFallback builds a summary directly from collected fields.
func summaryFallback(profile *models.CollectedProfile) string {
	if profile.Description != "" {
		return profile.Description
	}
	return fmt.Sprintf("%s is being researched; no background description was available.", profile.CompanyName)
}

func insightsFallback(profile *models.CollectedProfile) string {
	stock := profile.Stock
	if stock == nil {
		return fmt.Sprintf("No stock data was available for %s.", profile.CompanyName)
	}
	return fmt.Sprintf("%s (%s) trades at %s with a %s trend. Consensus recommendation: %s (confidence: %s), based on %s.",
		profile.CompanyName, stock.Ticker, stock.CurrentPrice, stock.Trend,
		stock.Recommendation, stock.Confidence, stock.Source)
}

func risksFallback(profile *models.CollectedProfile) string {
	stock := profile.Stock
	if stock == nil {
		return "Risk assessment requires stock data that was not available."
	}
	switch stock.Trend {
	case models.TrendBullish:
		if stock.Verified {
			return "Momentum is positive, supported by live exchange data. Results announcements and sector news remain the main reversal risks."
		}
		return "Momentum is positive, but web-sourced signals can lag the market. Verify prices with a broker before acting."
	case models.TrendBearish:
		return "Momentum is negative. Downside risk may persist; watch for upcoming results or announcements before taking a position."
	default:
		return "No clear directional signal. Position sizing should reflect the limited conviction in the collected data."
	}
}
