package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

// SourceRepo implements domain.SourceRepository over a pgx pool.
type SourceRepo struct{ Pool PgxPool }

// NewSourceRepo constructs a SourceRepo with the given pool.
func NewSourceRepo(p PgxPool) *SourceRepo { return &SourceRepo{Pool: p} }

func (r *SourceRepo) ListEnabled(ctx domain.Context) ([]domain.Source, error) {
	tracer := otel.Tracer("repo.sources")
	ctx, span := tracer.Start(ctx, "sources.ListEnabled")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "sources"),
	)

	q := `SELECT id, name, enabled, created_at FROM sources WHERE enabled = true ORDER BY id`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=source.list_enabled: %w", err)
	}
	defer rows.Close()

	var out []domain.Source
	for rows.Next() {
		var s domain.Source
		if err := rows.Scan(&s.ID, &s.Name, &s.Enabled, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=source.list_enabled_scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=source.list_enabled_rows: %w", err)
	}
	return out, nil
}

// UpsertByName inserts a source row keyed by name if one doesn't already
// exist, leaving its id and enabled flag untouched on a repeat seed run.
// Used only by cmd/seed; the three job binaries never create Source rows.
func (r *SourceRepo) UpsertByName(ctx domain.Context, name string, enabled bool) error {
	tracer := otel.Tracer("repo.sources")
	ctx, span := tracer.Start(ctx, "sources.UpsertByName")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "sources"),
	)

	q := `INSERT INTO sources (id, name, enabled)
	      VALUES (gen_random_uuid(), $1, $2)
	      ON CONFLICT (name) DO UPDATE SET enabled = $2`
	if _, err := r.Pool.Exec(ctx, q, name, enabled); err != nil {
		return fmt.Errorf("op=source.upsert_by_name: %w", err)
	}
	return nil
}

func (r *SourceRepo) Get(ctx domain.Context, id string) (domain.Source, error) {
	tracer := otel.Tracer("repo.sources")
	ctx, span := tracer.Start(ctx, "sources.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "sources"),
	)

	q := `SELECT id, name, enabled, created_at FROM sources WHERE id = $1`
	row := r.Pool.QueryRow(ctx, q, id)
	var s domain.Source
	if err := row.Scan(&s.ID, &s.Name, &s.Enabled, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Source{}, fmt.Errorf("op=source.get: %w", domain.ErrNotFound)
		}
		return domain.Source{}, fmt.Errorf("op=source.get: %w", err)
	}
	return s, nil
}
