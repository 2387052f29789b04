package yad2

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/oricho123/rentifier/internal/domain"
)

// searchResponse is the envelope yad2's search endpoint returns.
type searchResponse struct {
	Items []listItem `json:"items"`
}

func parseSearchResponse(body []byte) ([]listItem, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("op=yad2.parse_search_response: %w", err)
	}
	return resp.Items, nil
}

// Connector implements connector.Connector for the yad2 marketplace.
type Connector struct {
	client *client
	clock  func() time.Time
}

// New constructs a yad2 connector against baseURL using httpClient as its
// transport. httpClient is typically *http.Client but may be a fake in
// tests.
func New(httpClient httpDoer, baseURL string) *Connector {
	return &Connector{client: newClient(httpClient, baseURL), clock: time.Now}
}

// NewDefault constructs a yad2 connector using a plain *http.Client with a
// 10-second timeout, per §4.1.
func NewDefault(baseURL string) *Connector {
	return New(&http.Client{Timeout: 10 * time.Second}, baseURL)
}

func (c *Connector) Source() string { return sourceID }

// FetchNew implements the connector contract (§4.1): round-robin over
// enabled cities by priority-descending, id-ascending order, resuming from
// the cursor's last city index; honors the circuit breaker; dedups against
// the cursor's FIFO seen-order-id set.
func (c *Connector) FetchNew(ctx domain.Context, rawCursor []byte, cities []domain.MonitoredCity) ([]domain.ListingCandidate, []byte, error) {
	cur, err := decodeCursor(rawCursor)
	if err != nil {
		return nil, nil, err
	}

	now := c.clock()
	if cur.circuitOpen(now) {
		encoded, encErr := cur.encode()
		if encErr != nil {
			return nil, nil, encErr
		}
		return nil, encoded, nil
	}

	ordered := orderedEnabledCities(cities)
	if len(ordered) == 0 {
		encoded, encErr := cur.encode()
		return nil, encoded, encErr
	}

	idx := cur.LastCityIndex % len(ordered)
	city := ordered[idx]

	items, err := c.client.search(ctx, city.CityCode)
	if err != nil {
		cur = cur.recordFailure(now)
		encoded, encErr := cur.encode()
		if encErr != nil {
			return nil, nil, encErr
		}
		return nil, encoded, err
	}
	cur = cur.recordSuccess()

	candidates := make([]domain.ListingCandidate, 0, len(items))
	for _, item := range items {
		if cur.hasSeen(item.OrderID) {
			continue
		}
		cur = cur.markSeen(item.OrderID)
		candidates = append(candidates, toCandidate(item))
	}

	cur.LastCityIndex = (idx + 1) % len(ordered)

	encoded, err := cur.encode()
	if err != nil {
		return nil, nil, err
	}
	return candidates, encoded, nil
}

// orderedEnabledCities filters to enabled cities and sorts priority
// descending, id ascending, matching §4.1's round-robin order.
func orderedEnabledCities(cities []domain.MonitoredCity) []domain.MonitoredCity {
	out := make([]domain.MonitoredCity, 0, len(cities))
	for _, c := range cities {
		if c.Enabled {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func toCandidate(item listItem) domain.ListingCandidate {
	data := map[string]any{
		"city":          item.City,
		"neighborhood":  item.Neighborhood,
		"price":         item.Price,
		"rooms":         item.Rooms,
		"floor":         item.Floor,
		"square_meters": item.SquareMeters,
		"property_type": item.PropertyType,
		"image_url":     item.ImageURL,
		"latitude":      item.Latitude,
		"longitude":     item.Longitude,
	}
	return domain.ListingCandidate{
		Source:         sourceID,
		SourceItemID:   item.OrderID,
		RawTitle:       item.Title,
		RawDescription: item.Description,
		RawURL:         item.URL,
		SourceData:     data,
	}
}
