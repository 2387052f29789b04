package postgres_test

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/oricho123/rentifier/internal/adapter/repo/postgres"
	"github.com/oricho123/rentifier/internal/domain"
)

func TestRawListingRepo_InsertBatch_DuplicatesSilentlyIgnored(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewRawListingRepo(m)
	ctx := context.Background()

	rows := []domain.RawListing{
		{SourceID: "src1", SourceItemID: "A", RawJSON: `{"id":"A"}`, FetchedAt: time.Now().UTC()},
		{SourceID: "src1", SourceItemID: "B", RawJSON: `{"id":"B"}`, FetchedAt: time.Now().UTC()},
	}

	m.ExpectBatch()
	m.ExpectExec("INSERT INTO listings_raw").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	m.ExpectExec("INSERT INTO listings_raw").WillReturnResult(pgxmock.NewResult("INSERT", 0)) // duplicate

	inserted, err := repo.InsertBatch(ctx, rows)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)
}

func TestRawListingRepo_InsertBatch_Empty(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewRawListingRepo(m)

	inserted, err := repo.InsertBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, inserted)
}

func TestRawListingRepo_MarkProcessed_NotFound(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewRawListingRepo(m)

	m.ExpectExec("UPDATE listings_raw SET processed_at").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkProcessed(context.Background(), "missing", time.Now())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
