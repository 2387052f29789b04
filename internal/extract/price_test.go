package extract

import (
	"testing"

	"github.com/oricho123/rentifier/internal/domain"
)

func TestExtractPrice_ShekelSymbolPrefix(t *testing.T) {
	r := ExtractPrice("דירה להשכרה ₪5,500 לחודש")
	if r == nil {
		t.Fatalf("expected a match")
	}
	if r.Amount != 5500 || r.Currency != "ILS" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Period != domain.PriceMonthly || r.Confidence != 0.9 {
		t.Fatalf("expected explicit monthly period to raise confidence, got %+v", r)
	}
}

func TestExtractPrice_NoExplicitPeriodDefaultsToMonthlyLowerConfidence(t *testing.T) {
	r := ExtractPrice("rent 3000 ש\"ח")
	if r == nil {
		t.Fatalf("expected a match")
	}
	if r.Period != domain.PriceMonthly || r.Confidence != 0.7 {
		t.Fatalf("expected default monthly period at 0.7 confidence, got %+v", r)
	}
}

func TestExtractPrice_Weekly(t *testing.T) {
	r := ExtractPrice("$400 per week, sea view")
	if r == nil {
		t.Fatalf("expected a match")
	}
	if r.Currency != "USD" || r.Period != domain.PriceWeekly {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestExtractPrice_NoCurrencyReturnsNil(t *testing.T) {
	if r := ExtractPrice("great location, close to everything"); r != nil {
		t.Fatalf("expected nil, got %+v", r)
	}
}

func TestExtractPrice_ZeroAmountRejected(t *testing.T) {
	if r := ExtractPrice("₪0 לחודש"); r != nil {
		t.Fatalf("expected nil for non-positive amount, got %+v", r)
	}
}

func TestExtractPrice_Purity(t *testing.T) {
	text := "₪6,200 לחודש, מרוהטת"
	a := ExtractPrice(text)
	b := ExtractPrice(text)
	if *a != *b {
		t.Fatalf("ExtractPrice is not pure: %+v vs %+v", a, b)
	}
}
