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

// WorkerStateRepo implements domain.WorkerStateRepository over a pgx pool.
type WorkerStateRepo struct{ Pool PgxPool }

// NewWorkerStateRepo constructs a WorkerStateRepo with the given pool.
func NewWorkerStateRepo(p PgxPool) *WorkerStateRepo { return &WorkerStateRepo{Pool: p} }

func (r *WorkerStateRepo) Get(ctx domain.Context, workerName string) (domain.WorkerState, error) {
	tracer := otel.Tracer("repo.worker_state")
	ctx, span := tracer.Start(ctx, "worker_state.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "worker_state"),
	)

	q := `SELECT worker_name, last_run_at, last_status, last_error FROM worker_state WHERE worker_name = $1`
	row := r.Pool.QueryRow(ctx, q, workerName)
	var w domain.WorkerState
	if err := row.Scan(&w.WorkerName, &w.LastRunAt, &w.LastStatus, &w.LastError); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WorkerState{WorkerName: workerName}, nil
		}
		return domain.WorkerState{}, fmt.Errorf("op=worker_state.get: %w", err)
	}
	return w, nil
}

func (r *WorkerStateRepo) MarkSuccess(ctx domain.Context, workerName string, runAt time.Time) error {
	tracer := otel.Tracer("repo.worker_state")
	ctx, span := tracer.Start(ctx, "worker_state.MarkSuccess")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "worker_state"),
	)

	q := `INSERT INTO worker_state (worker_name, last_run_at, last_status, last_error)
	      VALUES ($1, $2, 'ok', '')
	      ON CONFLICT (worker_name) DO UPDATE SET last_run_at = $2, last_status = 'ok', last_error = ''`
	if _, err := r.Pool.Exec(ctx, q, workerName, runAt); err != nil {
		return fmt.Errorf("op=worker_state.mark_success: %w", err)
	}
	return nil
}
