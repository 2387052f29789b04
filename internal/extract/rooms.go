package extract

import (
	"regexp"
	"strconv"
)

var studioPattern = regexp.MustCompile(`(?i)(studio|סטודיו)`)

// roomPatterns captures a numeric (possibly half-room, e.g. "2.5") room
// count in Hebrew and English phrasing. Ordered; the first match wins.
var roomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.5)?)\s*(?:חדרים|חד')`),
	regexp.MustCompile(`(\d+(?:\.5)?)\s*(?:rooms?|bedrooms?|br\b)`),
}

// ExtractRooms returns the room count (0 for a studio), or nil if no room
// signal was found in text.
func ExtractRooms(text string) *float64 {
	if studioPattern.MatchString(text) {
		zero := 0.0
		return &zero
	}
	for _, p := range roomPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}
