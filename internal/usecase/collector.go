// Package usecase orchestrates the collector, processor, and notifier jobs
// on top of the domain ports, the connector registry, and the extractor.
package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/oricho123/rentifier/internal/adapter/observability"
	"github.com/oricho123/rentifier/internal/connector"
	"github.com/oricho123/rentifier/internal/domain"
)

// CollectorSummary is the structured outcome of a single collector run (§4.2
// step 5).
type CollectorSummary struct {
	TotalSources int
	Success      int
	Error        int
	Skipped      int
	TotalFetched int
	Errors       []string
}

// CollectorService runs the fetch-and-stage half of the pipeline: one pass
// over every enabled source, each isolated from the others' failures.
type CollectorService struct {
	Sources      domain.SourceRepository
	SourceStates domain.SourceStateRepository
	RawListings  domain.RawListingRepository
	Connectors   *connector.Registry
	StoreView    domain.StoreView
	BatchSize    int
	Publisher    EventPublisher
}

// NewCollectorService constructs a CollectorService, defaulting BatchSize to
// the design target of 500 rows per insert statement (§4.2) when unset.
func NewCollectorService(sources domain.SourceRepository, states domain.SourceStateRepository, raw domain.RawListingRepository, registry *connector.Registry, sv domain.StoreView, batchSize int) CollectorService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return CollectorService{
		Sources:      sources,
		SourceStates: states,
		RawListings:  raw,
		Connectors:   registry,
		StoreView:    sv,
		BatchSize:    batchSize,
		Publisher:    NoopPublisher{},
	}
}

// Run executes one collector pass over every enabled source, leaf-first
// (§4.2): a source's failure never prevents subsequent sources from being
// attempted.
func (s CollectorService) Run(ctx domain.Context) (CollectorSummary, error) {
	tr := otel.Tracer("usecase.collector")
	ctx, span := tr.Start(ctx, "CollectorService.Run")
	defer span.End()

	lg := observability.LoggerFromContext(ctx)
	summary := CollectorSummary{}

	sources, err := s.Sources.ListEnabled(ctx)
	if err != nil {
		return summary, fmt.Errorf("op=collector.Run: %w", err)
	}
	summary.TotalSources = len(sources)

	cities, err := s.StoreView.GetEnabledCities(ctx)
	if err != nil {
		return summary, fmt.Errorf("op=collector.Run: %w", err)
	}

	for _, src := range sources {
		now := time.Now().UTC()
		conn, ok := s.Connectors.Get(src.Name)
		if !ok {
			lg.Warn("no connector registered for source", slog.String("source", src.Name))
			summary.Skipped++
			continue
		}

		state, err := s.SourceStates.Get(ctx, src.ID)
		if err != nil {
			lg.Error("failed to load source state", slog.String("source", src.Name), slog.Any("error", err))
			summary.Error++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			continue
		}

		candidates, nextCursor, err := conn.FetchNew(ctx, []byte(state.Cursor), cities)
		if err != nil {
			lg.Error("fetch failed", slog.String("source", src.Name), slog.Any("error", err))
			// nextCursor still carries the connector's bumped circuit-breaker
			// counters (§4.1) even on failure; persist it so the breaker can
			// actually trip across runs instead of resetting to the last
			// success's cursor every time.
			if mErr := s.SourceStates.MarkError(ctx, src.ID, string(nextCursor), now, err.Error()); mErr != nil {
				lg.Error("failed to record source error state", slog.String("source", src.Name), slog.Any("error", mErr))
			}
			summary.Error++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			observability.CollectorSourceErrorsTotal.WithLabelValues(src.Name).Inc()
			continue
		}

		inserted, err := s.insertCandidates(ctx, src, candidates, now)
		if err != nil {
			lg.Error("failed to persist raw listings", slog.String("source", src.Name), slog.Any("error", err))
			if mErr := s.SourceStates.MarkError(ctx, src.ID, string(nextCursor), now, err.Error()); mErr != nil {
				lg.Error("failed to record source error state", slog.String("source", src.Name), slog.Any("error", mErr))
			}
			summary.Error++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			continue
		}

		if err := s.SourceStates.MarkSuccess(ctx, src.ID, string(nextCursor), now); err != nil {
			lg.Error("failed to advance cursor", slog.String("source", src.Name), slog.Any("error", err))
			summary.Error++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			continue
		}

		summary.Success++
		summary.TotalFetched += inserted
		observability.CollectorFetchedTotal.WithLabelValues(src.Name).Add(float64(inserted))
		s.Publisher.Publish(ctx, "collector.source_collected", map[string]any{
			"source": src.Name, "fetched": len(candidates), "inserted": inserted,
		})
	}

	lg.Info("collector run complete",
		slog.Int("total_sources", summary.TotalSources),
		slog.Int("success", summary.Success),
		slog.Int("error", summary.Error),
		slog.Int("skipped", summary.Skipped),
		slog.Int("total_fetched", summary.TotalFetched))
	return summary, nil
}

// insertCandidates persists every candidate as a RawListing in bounded
// batches (§4.2), ignoring duplicate (source_id, source_item_id) inserts.
func (s CollectorService) insertCandidates(ctx domain.Context, src domain.Source, candidates []domain.ListingCandidate, fetchedAt time.Time) (int, error) {
	rows := make([]domain.RawListing, 0, len(candidates))
	for _, c := range candidates {
		raw, err := marshalCandidate(c)
		if err != nil {
			return 0, fmt.Errorf("op=collector.insertCandidates: %w", err)
		}
		rows = append(rows, domain.RawListing{
			SourceID:     src.ID,
			SourceItemID: c.SourceItemID,
			URL:          c.RawURL,
			RawJSON:      raw,
			FetchedAt:    fetchedAt,
		})
	}

	total := 0
	for start := 0; start < len(rows); start += s.BatchSize {
		end := min(start+s.BatchSize, len(rows))
		n, err := s.RawListings.InsertBatch(ctx, rows[start:end])
		if err != nil {
			return total, fmt.Errorf("op=collector.insertCandidates: %w", err)
		}
		total += n
	}
	return total, nil
}
