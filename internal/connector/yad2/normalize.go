package yad2

import (
	"log/slog"

	"github.com/oricho123/rentifier/internal/domain"
	"github.com/oricho123/rentifier/internal/extract"
	"github.com/oricho123/rentifier/pkg/textx"
)

// Normalize derives a ListingDraft from a candidate's structural
// SourceData fields, resolves its own city/neighborhood fields against the
// alias table directly, then layers the shared free-text extraction rules
// over title/description via extract.ApplyToDraft: extracted price and rooms
// replace the structural values, while an extracted city/neighborhood only
// fills what the structural fields left unresolved (§4.3 step 5, §4.5).
func (c *Connector) Normalize(candidate domain.ListingCandidate) (domain.ListingDraft, error) {
	draft := domain.ListingDraft{
		Title:       textx.SanitizeText(candidate.RawTitle),
		Description: textx.SanitizeText(candidate.RawDescription),
		URL:         candidate.RawURL,
		PostedAt:    candidate.RawPostedAt,
	}

	rawCity, _ := candidate.SourceData["city"].(string)
	rawNeighborhood, _ := candidate.SourceData["neighborhood"].(string)

	if city, ok := extract.NormalizeCity(rawCity); ok {
		draft.City = city
		if hood, ok := extract.Default.NormalizeNeighborhood(city, rawNeighborhood); ok {
			draft.Neighborhood = hood
		}
	} else if rawCity != "" {
		slog.Warn("unknown_city", slog.String("source", "yad2"), slog.String("raw_city", rawCity))
	}

	if price, ok := candidate.SourceData["price"].(float64); ok && price > 0 {
		draft.Price = &price
		draft.Currency = "ILS"
		draft.PricePeriod = domain.PriceMonthly
	}
	if rooms, ok := candidate.SourceData["rooms"].(float64); ok && rooms > 0 {
		draft.Bedrooms = &rooms
	}
	if floor, ok := candidate.SourceData["floor"].(*int); ok {
		draft.Floor = floor
	}
	if sqm, ok := candidate.SourceData["square_meters"].(*float64); ok {
		draft.SquareMeters = sqm
	}
	if propertyType, ok := candidate.SourceData["property_type"].(string); ok {
		draft.PropertyType = propertyType
	}
	if imageURL, ok := candidate.SourceData["image_url"].(string); ok {
		draft.ImageURL = imageURL
	}
	if lat, ok := candidate.SourceData["latitude"].(*float64); ok {
		draft.Latitude = lat
	}
	if lon, ok := candidate.SourceData["longitude"].(*float64); ok {
		draft.Longitude = lon
	}

	result := extract.ExtractAll(draft.Title, draft.Description)
	extract.ApplyToDraft(&draft, result)

	return draft, nil
}
