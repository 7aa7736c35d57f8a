package app

import (
	"fmt"
	"strings"

	"github.com/praveshk/stockpulse/internal/models"
)

// formatProfile renders a collected profile as markdown for tool output.
func formatProfile(profile *models.CollectedProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", profile.CompanyName)
	fmt.Fprintf(&sb, "**Data quality:** %s\n\n", profile.Quality)

	if profile.CollectionError != "" {
		fmt.Fprintf(&sb, "**Collection error:** %s\n\n", profile.CollectionError)
	}

	if profile.Description != "" {
		sb.WriteString("## Background\n\n")
		sb.WriteString(profile.Description)
		sb.WriteString("\n\n")
	}
	if profile.OfficialURL != "" {
		fmt.Fprintf(&sb, "**Official website:** %s\n\n", profile.OfficialURL)
	}

	if stock := profile.Stock; stock != nil {
		sb.WriteString("## Stock Signal\n\n")
		fmt.Fprintf(&sb, "| Ticker | Price | Change | Trend | Recommendation | Confidence |\n")
		fmt.Fprintf(&sb, "|---|---|---|---|---|---|\n")
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n\n",
			stock.Ticker, stock.CurrentPrice, stock.PriceChangePct,
			stock.Trend, stock.Recommendation, stock.Confidence)
		fmt.Fprintf(&sb, "Source: %s", stock.Source)
		if stock.Verified {
			sb.WriteString(" (verified)")
		}
		sb.WriteString("\n\n")
	}

	if len(profile.News) > 0 {
		sb.WriteString("## Recent News\n\n")
		for _, item := range profile.News {
			fmt.Fprintf(&sb, "- **%s**", item.Title)
			if item.Summary != "" {
				fmt.Fprintf(&sb, " %s", item.Summary)
			}
			if item.URL != "" {
				fmt.Fprintf(&sb, " (%s)", item.URL)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(profile.Sources) > 0 {
		sb.WriteString("## Sources\n\n")
		for _, source := range profile.Sources {
			fmt.Fprintf(&sb, "- %s\n", source)
		}
	}

	return strings.TrimSpace(sb.String())
}

// formatAnalysis renders the generated analysis as markdown.
func formatAnalysis(profile *models.CollectedProfile, analysis *models.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s: Analysis\n\n", profile.CompanyName)
	fmt.Fprintf(&sb, "**Data quality:** %s | Generated %s\n\n",
		analysis.DataQuality, analysis.GeneratedAt.Format("2006-01-02 15:04 MST"))

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(analysis.ExecutiveSummary)
	sb.WriteString("\n\n## Market Insights\n\n")
	sb.WriteString(analysis.MarketInsights)
	sb.WriteString("\n\n## Risks & Opportunities\n\n")
	sb.WriteString(analysis.RisksOpportunities)

	if analysis.DataSources != "" {
		sb.WriteString("\n\n## Data Sources\n\n")
		for _, line := range strings.Split(analysis.DataSources, "\n") {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}

	return strings.TrimSpace(sb.String())
}
