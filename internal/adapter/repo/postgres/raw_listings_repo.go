package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

// RawListingRepo implements domain.RawListingRepository over a pgx pool.
type RawListingRepo struct{ Pool PgxPool }

// NewRawListingRepo constructs a RawListingRepo with the given pool.
func NewRawListingRepo(p PgxPool) *RawListingRepo { return &RawListingRepo{Pool: p} }

// InsertBatch inserts rows as a single pipelined batch, relying on the
// (source_id, source_item_id) unique constraint to silently absorb
// duplicates (§4.2 step 4). Rows missing an ID are assigned a fresh ULID so
// inserted-at ordering stays time-sortable.
func (r *RawListingRepo) InsertBatch(ctx domain.Context, rows []domain.RawListing) (int, error) {
	tracer := otel.Tracer("repo.raw_listings")
	ctx, span := tracer.Start(ctx, "raw_listings.InsertBatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "listings_raw"),
		attribute.Int("db.batch_size", len(rows)),
	)
	if len(rows) == 0 {
		return 0, nil
	}

	const q = `INSERT INTO listings_raw (id, source_id, source_item_id, url, raw_json, fetched_at)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           ON CONFLICT (source_id, source_item_id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = ulid.Make().String()
		}
		fetchedAt := row.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now().UTC()
		}
		batch.Queue(q, id, row.SourceID, row.SourceItemID, row.URL, row.RawJSON, fetchedAt)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range rows {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("op=raw_listing.insert_batch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *RawListingRepo) ListUnprocessed(ctx domain.Context, limit int) ([]domain.RawListing, error) {
	tracer := otel.Tracer("repo.raw_listings")
	ctx, span := tracer.Start(ctx, "raw_listings.ListUnprocessed")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "listings_raw"),
	)

	q := `SELECT id, source_id, source_item_id, url, raw_json, fetched_at, processed_at
	      FROM listings_raw WHERE processed_at IS NULL ORDER BY fetched_at ASC LIMIT $1`
	rows, err := r.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("op=raw_listing.list_unprocessed: %w", err)
	}
	defer rows.Close()

	var out []domain.RawListing
	for rows.Next() {
		var rl domain.RawListing
		if err := rows.Scan(&rl.ID, &rl.SourceID, &rl.SourceItemID, &rl.URL, &rl.RawJSON, &rl.FetchedAt, &rl.ProcessedAt); err != nil {
			return nil, fmt.Errorf("op=raw_listing.list_unprocessed_scan: %w", err)
		}
		out = append(out, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=raw_listing.list_unprocessed_rows: %w", err)
	}
	return out, nil
}

func (r *RawListingRepo) MarkProcessed(ctx domain.Context, id string, at time.Time) error {
	tracer := otel.Tracer("repo.raw_listings")
	ctx, span := tracer.Start(ctx, "raw_listings.MarkProcessed")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "listings_raw"),
	)

	q := `UPDATE listings_raw SET processed_at = $2 WHERE id = $1`
	tag, err := r.Pool.Exec(ctx, q, id, at)
	if err != nil {
		return fmt.Errorf("op=raw_listing.mark_processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=raw_listing.mark_processed: %w", domain.ErrNotFound)
	}
	return nil
}
