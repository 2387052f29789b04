package postgres_test

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oricho123/rentifier/internal/adapter/repo/postgres"
	"github.com/oricho123/rentifier/internal/domain"
)

func TestCityRepo_ListEnabledScansRows(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewCityRepo(m)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"id", "city_name", "city_code", "enabled", "priority"}).
		AddRow("1", "Tel Aviv", "5000", true, 10).
		AddRow("2", "Haifa", "4000", true, 5)
	m.ExpectQuery("SELECT id, city_name, city_code, enabled, priority FROM monitored_cities").
		WillReturnRows(rows)

	cities, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Tel Aviv", cities[0].CityName)
	assert.Equal(t, 10, cities[0].Priority)
}

func TestCityRepo_GetEnabledCitiesDelegatesToListEnabled(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewCityRepo(m)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"id", "city_name", "city_code", "enabled", "priority"}).
		AddRow("1", "Tel Aviv", "5000", true, 10)
	m.ExpectQuery("SELECT id, city_name, city_code, enabled, priority FROM monitored_cities").
		WillReturnRows(rows)

	var sv domain.StoreView = repo
	cities, err := sv.GetEnabledCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 1)
}

func TestCityRepo_UpsertSendsAllFields(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewCityRepo(m)
	ctx := context.Background()

	m.ExpectExec("INSERT INTO monitored_cities").
		WithArgs("1", "Tel Aviv", "5000", true, 10).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(ctx, domain.MonitoredCity{ID: "1", CityName: "Tel Aviv", CityCode: "5000", Enabled: true, Priority: 10})
	require.NoError(t, err)
}

func TestCityRepo_ListEnabledPropagatesQueryError(t *testing.T) {
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer m.Close()
	repo := postgres.NewCityRepo(m)
	ctx := context.Background()

	m.ExpectQuery("SELECT id, city_name, city_code, enabled, priority FROM monitored_cities").
		WillReturnError(assert.AnError)

	_, err = repo.ListEnabled(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
