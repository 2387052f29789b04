package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oricho123/rentifier/internal/adapter/repo/postgres"
)

func TestWorkerStateRepo_GetMissingReturnsZeroValue(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewWorkerStateRepo(m)
	ctx := context.Background()

	m.ExpectQuery("SELECT worker_name, last_run_at, last_status, last_error FROM worker_state").
		WithArgs("notifier").
		WillReturnError(pgx.ErrNoRows)

	state, err := repo.Get(ctx, "notifier")
	require.NoError(t, err)
	assert.Equal(t, "notifier", state.WorkerName)
	assert.Empty(t, state.LastStatus)
}

func TestWorkerStateRepo_MarkSuccessUpserts(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewWorkerStateRepo(m)
	ctx := context.Background()
	now := time.Now().UTC()

	m.ExpectExec("INSERT INTO worker_state").
		WithArgs("notifier", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.MarkSuccess(ctx, "notifier", now))
}

func TestWorkerStateRepo_GetPropagatesDBError(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewWorkerStateRepo(m)
	ctx := context.Background()

	m.ExpectQuery("SELECT worker_name, last_run_at, last_status, last_error FROM worker_state").
		WillReturnError(assert.AnError)

	_, err = repo.Get(ctx, "notifier")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
