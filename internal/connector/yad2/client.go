package yad2

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/oricho123/rentifier/internal/connector"
	"github.com/oricho123/rentifier/internal/domain"
)

// captchaMarker is the vendor-specific string that identifies a
// bot-challenge response body rather than real listing data (§4.1).
const captchaMarker = "Radware Bot Manager Captcha"

const sourceID = "yad2"

// listItem is the shape of a single search-result entry in yad2's listing
// feed, trimmed to the fields the connector actually consumes.
type listItem struct {
	OrderID      string   `json:"order_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Price        float64  `json:"price"`
	Rooms        float64  `json:"rooms"`
	Floor        *int     `json:"floor"`
	SquareMeters *float64 `json:"square_meters"`
	PropertyType string   `json:"property_type"`
	ImageURL     string   `json:"image_url"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// httpDoer is the minimal surface client needs from *http.Client, kept
// narrow so tests can substitute a fake transport without constructing a
// real server.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// client performs a single city's search request, classifying failures
// per §4.1 and retrying transient ones with exponential backoff.
type client struct {
	http    httpDoer
	baseURL string
	maxRetries uint64
}

func newClient(doer httpDoer, baseURL string) *client {
	return &client{http: doer, baseURL: baseURL, maxRetries: 3}
}

// search fetches the current listing feed for a city code, retrying
// network/5xx failures with cenkalti/backoff's exponential policy
// (initial interval 1s, multiplier 2, capped at 3 retries).
func (c *client) search(ctx domain.Context, cityCode string) ([]listItem, error) {
	var items []listItem

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?city="+cityCode, nil)
		if err != nil {
			return backoff.Permanent(connector.NewError(sourceID, connector.KindParse, 0, err))
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return connector.NewError(sourceID, connector.KindNetwork, 0, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return connector.NewError(sourceID, connector.KindNetwork, resp.StatusCode, err)
		}

		if strings.Contains(string(body), captchaMarker) {
			return backoff.Permanent(connector.NewError(sourceID, connector.KindCaptcha, resp.StatusCode,
				fmt.Errorf("captcha challenge detected")))
		}

		if resp.StatusCode >= 500 {
			return connector.NewError(sourceID, connector.KindNetwork, resp.StatusCode,
				fmt.Errorf("server error"))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(connector.NewError(sourceID, connector.KindUnknown, resp.StatusCode,
				fmt.Errorf("client error")))
		}

		parsed, err := parseSearchResponse(body)
		if err != nil {
			return backoff.Permanent(connector.NewError(sourceID, connector.KindParse, resp.StatusCode, err))
		}
		items = parsed
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 1 * time.Second
	policy.Multiplier = 2

	err := backoff.Retry(op, backoff.WithMaxRetries(
		backoff.WithContext(policy, ctx), c.maxRetries))
	if err != nil {
		return nil, err
	}
	return items, nil
}
