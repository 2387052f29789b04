package domain

import "strings"

// RetryConfig mirrors the connector's backoff policy so both the HTTP client
// and any store-level retry wrapper share one notion of what counts as
// transient.
type RetryConfig struct {
	MaxRetries         int
	RetryableErrors    []string
	NonRetryableErrors []string
}

// DefaultRetryConfig matches §4.1's retryable/non-retryable classification:
// network errors, timeouts, and HTTP >= 500 are retryable; 4xx, parse
// errors, and captcha are not.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		RetryableErrors: []string{
			"network",
			"timeout",
			"connection refused",
			"context deadline exceeded",
		},
		NonRetryableErrors: []string{
			"captcha",
			"parse",
			"bad request",
			"not found",
			"forbidden",
		},
	}
}

// IsRetryable classifies an error message against the configured
// substrings, defaulting to retryable for unrecognized errors so a transient
// upstream hiccup doesn't get permanently written off.
func (c RetryConfig) IsRetryable(errMsg string) bool {
	lower := strings.ToLower(errMsg)
	for _, s := range c.NonRetryableErrors {
		if strings.Contains(lower, s) {
			return false
		}
	}
	for _, s := range c.RetryableErrors {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return true
}
