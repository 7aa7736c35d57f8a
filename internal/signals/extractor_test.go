package signals

import (
	"testing"

	"github.com/praveshk/stockpulse/internal/models"
)

func TestExtract_SinglePrice(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("Acme shares traded at ₹1,234.50 today", "", "s1")

	if len(ev.Prices) != 1 {
		t.Fatalf("expected 1 price, got %d: %v", len(ev.Prices), ev.Prices)
	}
	if ev.Prices[0] != 1234.50 {
		t.Errorf("price = %v, want 1234.50", ev.Prices[0])
	}
	if ev.SourceID != "s1" {
		t.Errorf("source id = %q, want s1", ev.SourceID)
	}
}

func TestExtract_MultiplePriceCandidates(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("opened at Rs. 95.20 and closed at ₹97.80", "", "s1")

	if len(ev.Prices) != 2 {
		t.Fatalf("expected 2 prices, got %d: %v", len(ev.Prices), ev.Prices)
	}
}

func TestExtract_PricePatternVariants(t *testing.T) {
	e := NewExtractor()
	tests := []struct {
		text string
		want float64
	}{
		{"price ₹150.25 per share", 150.25},
		{"price Rs. 150.25 per share", 150.25},
		{"price rs 150.25 per share", 150.25},
		{"price INR 150.25 per share", 150.25},
		{"price inr 1,50,0.25", 1500.25}, // separators normalized, not validated
	}
	for _, tt := range tests {
		ev := e.Extract(tt.text, "", "s")
		if len(ev.Prices) != 1 || ev.Prices[0] != tt.want {
			t.Errorf("Extract(%q) prices = %v, want [%v]", tt.text, ev.Prices, tt.want)
		}
	}
}

func TestExtract_RejectsOutOfRangePrices(t *testing.T) {
	e := NewExtractor()

	// Below the exclusive lower bound of 10
	ev := e.Extract("penny stock at ₹5", "", "s1")
	if len(ev.Prices) != 0 {
		t.Errorf("₹5 should be rejected, got %v", ev.Prices)
	}

	// Above the upper bound
	ev = e.Extract("market cap ₹999999999", "", "s1")
	if len(ev.Prices) != 0 {
		t.Errorf("₹999999999 should be rejected, got %v", ev.Prices)
	}

	// Bounds are exclusive
	ev = e.Extract("exactly rs 10", "", "s1")
	if len(ev.Prices) != 0 {
		t.Errorf("₹10 is on the exclusive bound and should be rejected, got %v", ev.Prices)
	}
}

func TestExtract_CustomPriceBounds(t *testing.T) {
	e := NewExtractor(WithPriceBounds(1, 100))
	ev := e.Extract("trading at ₹5 after the split", "", "s1")
	if len(ev.Prices) != 1 || ev.Prices[0] != 5 {
		t.Errorf("custom bounds: prices = %v, want [5]", ev.Prices)
	}
}

func TestExtract_BullishKeywords(t *testing.T) {
	e := NewExtractor()
	for _, text := range []string{
		"stock surges on earnings",
		"shares jump as Acme rallies",
		"positive outlook for the sector",
	} {
		ev := e.Extract(text, "", "s")
		if ev.Trend != models.TrendBullish {
			t.Errorf("Extract(%q) trend = %q, want bullish", text, ev.Trend)
		}
	}
}

func TestExtract_BearishKeywords(t *testing.T) {
	e := NewExtractor()
	for _, text := range []string{
		"stock tumbles after downgrade",
		"stock drops on weak results",
		"quarterly loss widens",
	} {
		ev := e.Extract(text, "", "s")
		if ev.Trend != models.TrendBearish {
			t.Errorf("Extract(%q) trend = %q, want bearish", text, ev.Trend)
		}
	}
}

func TestExtract_BullishWinsWhenBothPresent(t *testing.T) {
	// Bullish keywords are checked first; a snippet containing both
	// polarities votes bullish. This asymmetry is part of the contract.
	e := NewExtractor()
	ev := e.Extract("stock gains ground even as the wider sector trends down", "", "s")
	if ev.Trend != models.TrendBullish {
		t.Errorf("trend = %q, want bullish when both polarities present", ev.Trend)
	}
}

func TestExtract_TitleContributesToTrend(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("quarterly report released", "Acme stock surges 5%", "s")
	if ev.Trend != models.TrendBullish {
		t.Errorf("trend = %q, want bullish from title keyword", ev.Trend)
	}
}

func TestExtract_NoTrendKeyword(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("the company announced a new factory", "", "s")
	if ev.HasTrendVote() {
		t.Errorf("expected no trend vote, got %q", ev.Trend)
	}
}

func TestExtract_RecommendationPriority(t *testing.T) {
	e := NewExtractor()
	tests := []struct {
		text string
		want models.Recommendation
	}{
		{"analysts issue a strong buy on Acme", models.RecBuy},
		{"rated outperform by two brokerages", models.RecBuy},
		{"sell rating reiterated", models.RecSell},
		{"investors told to avoid the stock", models.RecSell},
		{"maintain position, say analysts", models.RecHold},
		{"neutral stance on valuation", models.RecHold},
		// BUY set checked before SELL, SELL before HOLD
		{"upgraded to buy rating from sell rating", models.RecBuy},
		{"sell rating with hold on the bonds", models.RecSell},
	}
	for _, tt := range tests {
		ev := e.Extract(tt.text, "", "s")
		if ev.Rec != tt.want {
			t.Errorf("Extract(%q) rec = %q, want %q", tt.text, ev.Rec, tt.want)
		}
	}
}

func TestExtract_OneRecVotePerSnippet(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("strong buy, accumulate, outperform, analysts agree", "", "s")
	if ev.Rec != models.RecBuy {
		t.Errorf("rec = %q, want single BUY vote", ev.Rec)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("ACME SURGES ON STRONG BUY RATING AT RS. 500", "", "s")
	if ev.Trend != models.TrendBullish {
		t.Errorf("trend = %q, want bullish", ev.Trend)
	}
	if ev.Rec != models.RecBuy {
		t.Errorf("rec = %q, want BUY", ev.Rec)
	}
	if len(ev.Prices) != 1 || ev.Prices[0] != 500 {
		t.Errorf("prices = %v, want [500]", ev.Prices)
	}
}

func TestExtract_EmptySnippet(t *testing.T) {
	e := NewExtractor()
	ev := e.Extract("", "", "s")
	if !ev.Empty() {
		t.Errorf("expected empty evidence, got %+v", ev)
	}
}
