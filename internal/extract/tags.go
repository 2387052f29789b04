package extract

import "strings"

// tagKeywords maps a canonical tag to the keywords (Hebrew + English) that
// trigger it. Multiple keywords can hit the same tag; the first hit per tag
// is enough to add it (§4.5).
var tagKeywords = map[string][]string{
	"parking":          {"חניה", "חנייה", "parking"},
	"balcony":          {"מרפסת", "balcony"},
	"pets":             {"בעלי חיים", "חיות מחמד", "pets allowed", "pet friendly"},
	"furnished":        {"מרוהט", "מרוהטת", "furnished"},
	"immediate":        {"מיידי", "כניסה מיידית", "immediate entry", "available now"},
	"long-term":        {"לטווח ארוך", "long-term", "long term"},
	"accessible":       {"נגיש", "נגישות", "accessible", "wheelchair"},
	"air-conditioning": {"מיזוג", "מזגן", "air conditioning", "a/c", "air-conditioning"},
}

// orderedTags fixes iteration order so ExtractTags is deterministic (P7)
// regardless of Go's randomized map iteration.
var orderedTags = []string{
	"parking", "balcony", "pets", "furnished", "immediate",
	"long-term", "accessible", "air-conditioning",
}

// ExtractTags returns the canonical tags whose keywords appear in text,
// case-insensitively, in a fixed deterministic order.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, tag := range orderedTags {
		for _, kw := range tagKeywords[tag] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}
