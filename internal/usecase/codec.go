package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/oricho123/rentifier/internal/domain"
)

// marshalCandidate serializes a candidate verbatim for RawListing.RawJSON
// (§4.2 step 4), preserved so the processor can later decode it back without
// re-fetching from the source.
func marshalCandidate(c domain.ListingCandidate) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("op=usecase.marshalCandidate: %w", err)
	}
	return string(b), nil
}

// unmarshalCandidate decodes a RawListing.RawJSON blob back into a
// ListingCandidate (§4.3 step 1).
func unmarshalCandidate(rawJSON string) (domain.ListingCandidate, error) {
	var c domain.ListingCandidate
	if err := json.Unmarshal([]byte(rawJSON), &c); err != nil {
		return domain.ListingCandidate{}, fmt.Errorf("op=usecase.unmarshalCandidate: %w", err)
	}
	return c, nil
}
