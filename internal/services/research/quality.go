package research

import "github.com/praveshk/stockpulse/internal/models"

// scoreDataQuality rates how much usable material the collection produced.
// Scoring: description +2, any news +2, a resolved price +2, three or
// more citations +1. Tiers: 5+ high, 3+ medium, 1+ low, else insufficient.
func scoreDataQuality(profile *models.CollectedProfile) models.QualityTier {
	score := 0
	if profile.Description != "" {
		score += 2
	}
	if len(profile.News) > 0 {
		score += 2
	}
	if profile.HasPrice() {
		score += 2
	}
	if len(profile.Sources) >= 3 {
		score++
	}

	switch {
	case score >= 5:
		return models.QualityHigh
	case score >= 3:
		return models.QualityMedium
	case score >= 1:
		return models.QualityLow
	default:
		return models.QualityInsufficient
	}
}
