package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/oricho123/rentifier/internal/domain"
)

// PriceResult is the outcome of ExtractPrice: an amount, currency, optional
// billing period, and a confidence derived per §4.5.
type PriceResult struct {
	Amount     float64
	Currency   string
	Period     domain.PricePeriod
	Confidence float64
}

type priceRule struct {
	pattern  *regexp.Regexp
	currency string
}

// Ordered currency patterns: ILS symbols/words first (the primary market),
// then USD, then EUR. The first matching rule wins.
var priceRules = []priceRule{
	{regexp.MustCompile(`(?i)(?:₪|ש"ח|שח|shekel)\s*([\d,]+)`), "ILS"},
	{regexp.MustCompile(`(?i)([\d,]+)\s*(?:₪|ש"ח|שח)`), "ILS"},
	{regexp.MustCompile(`\$\s*([\d,]+)`), "USD"},
	{regexp.MustCompile(`([\d,]+)\s*\$`), "USD"},
	{regexp.MustCompile(`€\s*([\d,]+)`), "EUR"},
	{regexp.MustCompile(`([\d,]+)\s*€`), "EUR"},
}

var periodRules = []struct {
	pattern *regexp.Regexp
	period  domain.PricePeriod
}{
	{regexp.MustCompile(`(?i)(לחודש|חודשי|/month|per month|monthly)`), domain.PriceMonthly},
	{regexp.MustCompile(`(?i)(לשבוע|שבועי|/week|per week|weekly)`), domain.PriceWeekly},
	{regexp.MustCompile(`(?i)(ליום|יומי|/day|per day|daily|per night|ללילה)`), domain.PriceDaily},
}

// ExtractPrice scans text for the first matching currency pattern and an
// independent period pattern. An explicit period boosts confidence from 0.7
// to 0.9 (§4.5). Returns nil if no price pattern matched.
func ExtractPrice(text string) *PriceResult {
	for _, rule := range priceRules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amountStr := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil || amount <= 0 {
			continue
		}
		result := &PriceResult{
			Amount:     amount,
			Currency:   rule.currency,
			Period:     domain.PriceMonthly,
			Confidence: 0.7,
		}
		for _, pr := range periodRules {
			if pr.pattern.MatchString(text) {
				result.Period = pr.period
				result.Confidence = 0.9
				break
			}
		}
		return result
	}
	return nil
}
