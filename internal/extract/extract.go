// Package extract implements the pure, stateless rule-based text
// extraction pipeline that turns a raw listing's free-text title and
// description into structured attributes (§4.5). Every function here is a
// deterministic, side-effect-free transform of its inputs — no I/O, no
// clock, no randomness — so connectors and the processor job can call it
// freely without coordination.
package extract

import "github.com/oricho123/rentifier/internal/domain"

// Result bundles every signal ExtractAll could pull out of a listing's
// title and description text. OverallConfidence is the minimum confidence
// across the signals that were actually present; it is 0 when neither
// price nor location could be determined.
type Result struct {
	Price             *PriceResult
	Rooms             *float64
	Tags              []string
	Location          *LocationResult
	OverallConfidence float64
}

// ExtractAll runs the full rule pipeline over title+" "+description (§4.3
// step 4, §4.5) using the default alias table.
func ExtractAll(title, description string) Result {
	return ExtractAllWith(Default, title, description)
}

// ExtractAllWith is ExtractAll parameterized over an explicit alias table.
func ExtractAllWith(table *AliasTable, title, description string) Result {
	text := title + " " + description

	res := Result{
		Price:    ExtractPrice(text),
		Rooms:    ExtractRooms(text),
		Tags:     ExtractTags(text),
		Location: ExtractLocationWith(table, text),
	}
	res.OverallConfidence = overallConfidence(res.Price, res.Location)
	return res
}

// overallConfidence implements §4.5's rule: the minimum confidence across
// the signals that are present, or 0 if neither price nor location could
// be resolved at all.
func overallConfidence(price *PriceResult, location *LocationResult) float64 {
	switch {
	case price != nil && location != nil:
		return min(price.Confidence, location.Confidence)
	case price != nil:
		return price.Confidence
	case location != nil:
		return location.Confidence
	default:
		return 0
	}
}

// ApplyToDraft copies the extracted signals onto an in-progress listing
// draft. An extracted price (with its currency and period), room count or
// non-empty tag set replaces the draft's value; an extracted city or
// neighborhood only fills a draft field that is still empty, so a location
// the connector resolved structurally is not replaced. Fields the pipeline
// could not determine are left untouched.
func ApplyToDraft(d *domain.ListingDraft, r Result) {
	if r.Price != nil {
		amount := r.Price.Amount
		d.Price = &amount
		d.Currency = r.Price.Currency
		d.PricePeriod = r.Price.Period
	}
	if r.Rooms != nil {
		rooms := *r.Rooms
		d.Bedrooms = &rooms
	}
	if len(r.Tags) > 0 {
		d.Tags = r.Tags
	}
	if r.Location != nil {
		if d.City == "" {
			d.City = r.Location.City
		}
		if d.Neighborhood == "" && r.Location.Neighborhood != "" {
			d.Neighborhood = r.Location.Neighborhood
		}
	}
}
