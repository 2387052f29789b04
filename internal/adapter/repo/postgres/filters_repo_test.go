package postgres_test

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oricho123/rentifier/internal/adapter/repo/postgres"
)

func TestFilterRepo_ListActiveWithUsersUnmarshalsArrays(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewFilterRepo(m)
	ctx := context.Background()

	minPrice := 2000.0
	cols := []string{
		"id", "user_id", "name", "min_price", "max_price", "min_bedrooms", "max_bedrooms",
		"cities", "neighborhoods", "keywords", "must_have_tags", "exclude_tags", "enabled", "created_at",
		"id", "chat_id", "display_name", "created_at",
	}
	rows := pgxmock.NewRows(cols).AddRow(
		"filter-1", "user-1", "3BR Tel Aviv", &minPrice, (*float64)(nil), (*float64)(nil), (*float64)(nil),
		[]byte(`["Tel Aviv"]`), []byte(`["Florentin"]`), []byte(`["balcony"]`), []byte(`[]`), []byte(`[]`), true, time.Now(),
		"user-1", "12345", "Dana", time.Now(),
	)
	m.ExpectQuery("SELECT f.id, f.user_id, f.name").WillReturnRows(rows)

	out, err := repo.ListActiveWithUsers(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"Tel Aviv"}, out[0].Filter.Cities)
	assert.Equal(t, "12345", out[0].User.ChatID)
}

func TestFilterRepo_ListActiveWithUsersPropagatesError(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewFilterRepo(m)
	ctx := context.Background()

	m.ExpectQuery("SELECT f.id, f.user_id, f.name").WillReturnError(assert.AnError)

	_, err = repo.ListActiveWithUsers(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
