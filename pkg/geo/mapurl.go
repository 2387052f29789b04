// Package geo provides small helpers for turning listing location fields
// into a user-facing map link.
package geo

import (
	"fmt"
	"net/url"
)

// MapURL builds a Google Maps link for a listing's location. When both
// coordinates are present it links straight to the coordinate pair;
// otherwise it falls back to a text search on the given address line.
func MapURL(lat, lon *float64, address string) string {
	if lat != nil && lon != nil {
		return fmt.Sprintf("https://maps.google.com/?q=%f,%f", *lat, *lon)
	}
	if address == "" {
		return ""
	}
	return "https://maps.google.com/?q=" + url.QueryEscape(address)
}
