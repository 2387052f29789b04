package usecase

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/oricho123/rentifier/internal/domain"
	"github.com/oricho123/rentifier/pkg/geo"
)

// RenderedMessage is the notifier's fully-formatted output for one (listing,
// user) delivery, ready to hand to the chat transport (§4.4d).
type RenderedMessage struct {
	Text     string
	ImageURL string
}

// RenderListing formats a listing into the notifier's message body: title,
// price with thousands separators, room count, address line with a map
// link, and the listing URL (§4.4d).
func RenderListing(l domain.Listing) RenderedMessage {
	var lines []string
	lines = append(lines, l.Title)
	if price := renderPrice(l); price != "" {
		lines = append(lines, price)
	}
	if rooms := renderRooms(l.Bedrooms); rooms != "" {
		lines = append(lines, rooms)
	}

	address := renderAddress(l)
	if address != "" {
		lines = append(lines, address)
	}
	if mapURL := geo.MapURL(l.Latitude, l.Longitude, address); mapURL != "" {
		lines = append(lines, mapURL)
	}
	if l.URL != "" {
		lines = append(lines, l.URL)
	}

	return RenderedMessage{
		Text:     strings.Join(lines, "\n"),
		ImageURL: l.ImageURL,
	}
}

func renderPrice(l domain.Listing) string {
	if l.Price == nil {
		return ""
	}
	amount := humanize.Comma(int64(*l.Price))
	currency := l.Currency
	if currency == "" {
		currency = "ILS"
	}
	period := string(l.PricePeriod)
	if period == "" {
		period = string(domain.PriceMonthly)
	}
	return fmt.Sprintf("%s %s/%s", amount, currency, period)
}

func renderRooms(bedrooms *float64) string {
	if bedrooms == nil {
		return ""
	}
	if *bedrooms == 0 {
		return "studio"
	}
	if *bedrooms == float64(int64(*bedrooms)) {
		return fmt.Sprintf("%d rooms", int64(*bedrooms))
	}
	return fmt.Sprintf("%.1f rooms", *bedrooms)
}

func renderAddress(l domain.Listing) string {
	var parts []string
	if l.Street != "" {
		street := l.Street
		if l.HouseNumber != "" {
			street = fmt.Sprintf("%s %s", street, l.HouseNumber)
		}
		parts = append(parts, street)
	}
	if l.Neighborhood != "" {
		parts = append(parts, l.Neighborhood)
	}
	if l.City != "" {
		parts = append(parts, l.City)
	}
	return strings.Join(parts, ", ")
}
