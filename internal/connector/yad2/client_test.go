package yad2

import (
	"context"
	"testing"

	"github.com/oricho123/rentifier/internal/connector"
)

func TestClient_CaptchaIsNonRetryable(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{
		{status: 200, body: "Radware Bot Manager Captcha detected, please verify"},
	}}
	c := newClient(doer, "http://example.invalid")
	c.maxRetries = 3

	_, err := c.search(context.Background(), "5000")
	if err == nil {
		t.Fatalf("expected an error")
	}
	var cerr *connector.Error
	if !asConnectorError(err, &cerr) {
		t.Fatalf("expected a connector.Error, got %T: %v", err, err)
	}
	if cerr.Kind != connector.KindCaptcha || cerr.Retryable {
		t.Fatalf("expected non-retryable captcha error, got %+v", cerr)
	}
	if doer.calls != 1 {
		t.Fatalf("expected exactly one HTTP call for a non-retryable error, got %d", doer.calls)
	}
}

func TestClient_ServerErrorRetriesThenSucceeds(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{
		{status: 500, body: "boom"},
		{status: 200, body: `{"items":[{"order_id":"A"}]}`},
	}}
	c := newClient(doer, "http://example.invalid")
	c.maxRetries = 3

	items, err := c.search(context.Background(), "5000")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 || items[0].OrderID != "A" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if doer.calls != 2 {
		t.Fatalf("expected one retry (2 calls), got %d", doer.calls)
	}
}

func TestClient_ClientErrorIsNonRetryable(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{
		{status: 404, body: "not found"},
	}}
	c := newClient(doer, "http://example.invalid")
	c.maxRetries = 3

	_, err := c.search(context.Background(), "5000")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if doer.calls != 1 {
		t.Fatalf("expected no retries for a 4xx, got %d calls", doer.calls)
	}
}

func asConnectorError(err error, target **connector.Error) bool {
	ce, ok := err.(*connector.Error)
	if !ok {
		return false
	}
	*target = ce
	return true
}
