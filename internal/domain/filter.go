package domain

import "strings"

// Matches reports whether a listing satisfies a filter (§4.6). Dimensions
// are conjunctively ANDed; a dimension passes trivially when the filter's
// constraint is unset or empty. Matches is pure: equal inputs always
// produce equal output (P8 depends on this).
func Matches(l Listing, f Filter) bool {
	return matchesPriceRange(l, f) &&
		matchesBedroomsRange(l, f) &&
		matchesCities(l, f) &&
		matchesNeighborhoods(l, f) &&
		matchesKeywords(l, f) &&
		matchesMustHaveTags(l, f) &&
		matchesExcludeTags(l, f)
}

func matchesPriceRange(l Listing, f Filter) bool {
	if f.MinPrice == nil && f.MaxPrice == nil {
		return true
	}
	if l.Price == nil {
		return false
	}
	if f.MinPrice != nil && *l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && *l.Price > *f.MaxPrice {
		return false
	}
	return true
}

func matchesBedroomsRange(l Listing, f Filter) bool {
	if f.MinBedrooms == nil && f.MaxBedrooms == nil {
		return true
	}
	if l.Bedrooms == nil {
		return false
	}
	if f.MinBedrooms != nil && *l.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MaxBedrooms != nil && *l.Bedrooms > *f.MaxBedrooms {
		return false
	}
	return true
}

func matchesCities(l Listing, f Filter) bool {
	if len(f.Cities) == 0 {
		return true
	}
	if l.City == "" {
		return false
	}
	return containsExact(f.Cities, l.City)
}

func matchesNeighborhoods(l Listing, f Filter) bool {
	if len(f.Neighborhoods) == 0 {
		return true
	}
	if l.Neighborhood == "" {
		return false
	}
	return containsExact(f.Neighborhoods, l.Neighborhood)
}

func matchesKeywords(l Listing, f Filter) bool {
	if len(f.Keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(l.Title + " " + l.Description)
	for _, kw := range f.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func matchesMustHaveTags(l Listing, f Filter) bool {
	if len(f.MustHaveTags) == 0 {
		return true
	}
	tagSet := toSet(l.Tags)
	for _, t := range f.MustHaveTags {
		if !tagSet[t] {
			return false
		}
	}
	return true
}

func matchesExcludeTags(l Listing, f Filter) bool {
	if len(l.Tags) == 0 || len(f.ExcludeTags) == 0 {
		return true
	}
	tagSet := toSet(l.Tags)
	for _, t := range f.ExcludeTags {
		if tagSet[t] {
			return false
		}
	}
	return true
}

func containsExact(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
