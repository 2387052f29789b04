package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/oricho123/rentifier/internal/adapter/observability"
	"github.com/oricho123/rentifier/internal/connector"
	"github.com/oricho123/rentifier/internal/domain"
	"github.com/oricho123/rentifier/internal/extract"
)

// ProcessorSummary is the structured outcome of a single processor run
// (§4.3).
type ProcessorSummary struct {
	Processed int
	Failed    int
	Errors    []string
}

// ProcessorService turns staged RawListings into canonical Listings,
// applying the shared connector-normalize + rule-based extraction pipeline
// to each item in isolation (§4.3).
type ProcessorService struct {
	Sources     domain.SourceRepository
	RawListings domain.RawListingRepository
	Listings    domain.ListingRepository
	Connectors  *connector.Registry
	AliasTable  *extract.AliasTable
	BatchSize   int
	Publisher   EventPublisher
}

// NewProcessorService constructs a ProcessorService, defaulting BatchSize to
// 50 (§4.3) when unset and the alias table to extract.Default.
func NewProcessorService(sources domain.SourceRepository, raw domain.RawListingRepository, listings domain.ListingRepository, registry *connector.Registry, batchSize int) ProcessorService {
	if batchSize <= 0 {
		batchSize = 50
	}
	return ProcessorService{
		Sources:     sources,
		RawListings: raw,
		Listings:    listings,
		Connectors:  registry,
		AliasTable:  extract.Default,
		BatchSize:   batchSize,
		Publisher:   NoopPublisher{},
	}
}

// Run processes up to BatchSize unprocessed RawListings, oldest first
// (§4.3). A single item's failure never blocks the rest of the batch.
func (s ProcessorService) Run(ctx domain.Context) (ProcessorSummary, error) {
	tr := otel.Tracer("usecase.processor")
	ctx, span := tr.Start(ctx, "ProcessorService.Run")
	defer span.End()

	lg := observability.LoggerFromContext(ctx)
	summary := ProcessorSummary{}

	rows, err := s.RawListings.ListUnprocessed(ctx, s.BatchSize)
	if err != nil {
		return summary, fmt.Errorf("op=processor.Run: %w", err)
	}

	sourceNames := map[string]string{}
	for _, row := range rows {
		if err := s.processOne(ctx, row, sourceNames); err != nil {
			lg.Error("processing raw listing failed",
				slog.String("raw_listing_id", row.ID),
				slog.Any("error", err))
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", row.ID, err))
			observability.ProcessorItemsTotal.WithLabelValues("failed").Inc()
			continue
		}
		summary.Processed++
		observability.ProcessorItemsTotal.WithLabelValues("ok").Inc()
	}

	lg.Info("processor run complete",
		slog.Int("processed", summary.Processed),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// processOne implements steps 1-7 of §4.3 for a single raw row. Unknown
// source/connector is left with processed_at = ⊥ so a future run retries it
// once the connector is registered.
func (s ProcessorService) processOne(ctx domain.Context, row domain.RawListing, sourceNames map[string]string) error {
	name, ok := sourceNames[row.SourceID]
	if !ok {
		src, err := s.Sources.Get(ctx, row.SourceID)
		if err != nil {
			return fmt.Errorf("op=processor.processOne: resolve source: %w", err)
		}
		name = src.Name
		sourceNames[row.SourceID] = name
	}

	conn, ok := s.Connectors.Get(name)
	if !ok {
		return fmt.Errorf("op=processor.processOne: %w: %s", domain.ErrUnknownSource, name)
	}

	candidate, err := unmarshalCandidate(row.RawJSON)
	if err != nil {
		return fmt.Errorf("op=processor.processOne: %w", err)
	}

	draft, err := conn.Normalize(candidate)
	if err != nil {
		return fmt.Errorf("op=processor.processOne: normalize: %w", err)
	}

	extraction := extract.ExtractAllWith(s.AliasTable, draft.Title, draft.Description)
	extract.ApplyToDraft(&draft, extraction)

	listing := composeListing(row, draft, extraction)

	id, err := s.Listings.Upsert(ctx, listing)
	if err != nil {
		return fmt.Errorf("op=processor.processOne: upsert: %w", err)
	}

	now := time.Now().UTC()
	if err := s.RawListings.MarkProcessed(ctx, row.ID, now); err != nil {
		return fmt.Errorf("op=processor.processOne: mark processed: %w", err)
	}

	s.Publisher.Publish(ctx, "processor.listing_upserted", map[string]any{
		"listing_id": id, "source_item_id": row.SourceItemID,
	})
	return nil
}

// composeListing applies the field-priority rule of §4.3 step 5: draft
// already carries extraction's overrides via ApplyToDraft, so composeListing
// only needs to copy the finished draft into canonical storage shape.
func composeListing(row domain.RawListing, draft domain.ListingDraft, extraction extract.Result) domain.Listing {
	var relevance *float64
	if extraction.OverallConfidence > 0 {
		v := extraction.OverallConfidence
		relevance = &v
	}
	var tags []string
	if len(draft.Tags) > 0 {
		tags = draft.Tags
	}
	return domain.Listing{
		SourceID:       row.SourceID,
		SourceItemID:   row.SourceItemID,
		Title:          draft.Title,
		Description:    draft.Description,
		Price:          draft.Price,
		Currency:       draft.Currency,
		PricePeriod:    draft.PricePeriod,
		Bedrooms:       draft.Bedrooms,
		City:           draft.City,
		Neighborhood:   draft.Neighborhood,
		Street:         draft.Street,
		HouseNumber:    draft.HouseNumber,
		Floor:          draft.Floor,
		SquareMeters:   draft.SquareMeters,
		PropertyType:   draft.PropertyType,
		Latitude:       draft.Latitude,
		Longitude:      draft.Longitude,
		ImageURL:       draft.ImageURL,
		Tags:           tags,
		RelevanceScore: relevance,
		URL:            draft.URL,
		PostedAt:       draft.PostedAt,
	}
}
