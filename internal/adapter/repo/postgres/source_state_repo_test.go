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

func TestSourceStateRepo_GetMissingReturnsZeroValue(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewSourceStateRepo(m)
	ctx := context.Background()

	m.ExpectQuery("SELECT source_id, cursor, last_run_at, last_status, last_error FROM source_state").
		WithArgs("yad2").
		WillReturnError(pgx.ErrNoRows)

	state, err := repo.Get(ctx, "yad2")
	require.NoError(t, err)
	assert.Equal(t, "yad2", state.SourceID)
	assert.Empty(t, state.Cursor)
}

func TestSourceStateRepo_MarkSuccessUpserts(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewSourceStateRepo(m)
	ctx := context.Background()
	now := time.Now().UTC()

	m.ExpectExec("INSERT INTO source_state").
		WithArgs("yad2", "cursor-v2", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.MarkSuccess(ctx, "yad2", "cursor-v2", now))
}

func TestSourceStateRepo_MarkErrorPersistsCursor(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewSourceStateRepo(m)
	ctx := context.Background()
	now := time.Now().UTC()

	m.ExpectExec("INSERT INTO source_state").
		WithArgs("yad2", "cursor-with-bumped-failures", now, "boom").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.MarkError(ctx, "yad2", "cursor-with-bumped-failures", now, "boom"))
}

func TestSourceStateRepo_MarkSuccessPropagatesDBError(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewSourceStateRepo(m)
	ctx := context.Background()

	m.ExpectExec("INSERT INTO source_state").
		WillReturnError(assert.AnError)

	err = repo.MarkSuccess(ctx, "yad2", "c1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
