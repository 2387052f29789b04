package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

// SourceStateRepo implements domain.SourceStateRepository over a pgx pool.
type SourceStateRepo struct{ Pool PgxPool }

// NewSourceStateRepo constructs a SourceStateRepo with the given pool.
func NewSourceStateRepo(p PgxPool) *SourceStateRepo { return &SourceStateRepo{Pool: p} }

func (r *SourceStateRepo) Get(ctx domain.Context, sourceID string) (domain.SourceState, error) {
	tracer := otel.Tracer("repo.source_state")
	ctx, span := tracer.Start(ctx, "source_state.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "source_state"),
	)

	q := `SELECT source_id, cursor, last_run_at, last_status, last_error FROM source_state WHERE source_id = $1`
	row := r.Pool.QueryRow(ctx, q, sourceID)
	var s domain.SourceState
	if err := row.Scan(&s.SourceID, &s.Cursor, &s.LastRunAt, &s.LastStatus, &s.LastError); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row yet for this source: first ever run, ⊥ cursor.
			return domain.SourceState{SourceID: sourceID}, nil
		}
		return domain.SourceState{}, fmt.Errorf("op=source_state.get: %w", err)
	}
	return s, nil
}

func (r *SourceStateRepo) MarkError(ctx domain.Context, sourceID string, cursor string, runAt time.Time, errMsg string) error {
	tracer := otel.Tracer("repo.source_state")
	ctx, span := tracer.Start(ctx, "source_state.MarkError")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "source_state"),
	)

	q := `INSERT INTO source_state (source_id, cursor, last_run_at, last_status, last_error)
	      VALUES ($1, $2, $3, 'error', $4)
	      ON CONFLICT (source_id) DO UPDATE SET cursor = $2, last_run_at = $3, last_status = 'error', last_error = $4`
	if _, err := r.Pool.Exec(ctx, q, sourceID, cursor, runAt, errMsg); err != nil {
		return fmt.Errorf("op=source_state.mark_error: %w", err)
	}
	return nil
}

func (r *SourceStateRepo) MarkSuccess(ctx domain.Context, sourceID string, nextCursor string, runAt time.Time) error {
	tracer := otel.Tracer("repo.source_state")
	ctx, span := tracer.Start(ctx, "source_state.MarkSuccess")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "source_state"),
	)

	q := `INSERT INTO source_state (source_id, cursor, last_run_at, last_status, last_error)
	      VALUES ($1, $2, $3, 'ok', '')
	      ON CONFLICT (source_id) DO UPDATE SET cursor = $2, last_run_at = $3, last_status = 'ok', last_error = ''`
	if _, err := r.Pool.Exec(ctx, q, sourceID, nextCursor, runAt); err != nil {
		return fmt.Errorf("op=source_state.mark_success: %w", err)
	}
	return nil
}
