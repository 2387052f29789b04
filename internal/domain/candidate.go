package domain

import "time"

// ListingCandidate is a source's raw-but-structured view of a listing, as
// emitted by a connector's fetchNew, before normalization. SourceData is
// preserved verbatim so normalize can access structured upstream fields
// without re-fetching.
type ListingCandidate struct {
	Source         string
	SourceItemID   string
	RawTitle       string
	RawDescription string
	RawURL         string
	RawPostedAt    *time.Time
	SourceData     map[string]any
}

// ListingDraft is the partially populated canonical listing a connector's
// normalize function derives from a ListingCandidate. Structural fields
// (floor, square meters, coordinates, images, property type, street, house
// number) are sourced from the draft only; price/currency/period/bedrooms
// are overridden by extraction when present, while city/neighborhood take
// the extracted value only when the draft leaves them empty; extraction
// does not replace a city or neighborhood the draft already carries
// (§4.3 step 5).
type ListingDraft struct {
	Title        string
	Description  string
	Price        *float64
	Currency     string
	PricePeriod  PricePeriod
	Bedrooms     *float64
	City         string
	Neighborhood string
	Street       string
	HouseNumber  string
	Floor        *int
	SquareMeters *float64
	PropertyType string
	Latitude     *float64
	Longitude    *float64
	ImageURL     string
	Tags         []string
	URL          string
	PostedAt     *time.Time
}

// StoreView is the read-only slice of the store a connector needs while
// fetching. It never exposes mutation so a connector cannot accidentally
// violate the single-writer ownership rules in §3.
type StoreView interface {
	// GetEnabledCities returns the operator-curated monitored city list.
	GetEnabledCities(ctx Context) ([]MonitoredCity, error)
}
