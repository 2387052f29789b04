package postgres

import (
	_ "embed"
	"fmt"

	"github.com/oricho123/rentifier/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// ApplyEmbeddedSchema runs the embedded idempotent DDL script against pool.
// Safe to call from every job binary's startup path; every statement uses
// CREATE TABLE/INDEX IF NOT EXISTS so concurrent first-runs of collector,
// processor, and notifier never race on table creation.
func ApplyEmbeddedSchema(ctx domain.Context, pool PgxPool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("op=schema.apply: %w", err)
	}
	return nil
}
