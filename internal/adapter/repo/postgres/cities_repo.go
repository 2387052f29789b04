package postgres

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

// CityRepo implements domain.MonitoredCityRepository over a pgx pool.
type CityRepo struct{ Pool PgxPool }

// NewCityRepo constructs a CityRepo with the given pool.
func NewCityRepo(p PgxPool) *CityRepo { return &CityRepo{Pool: p} }

func (r *CityRepo) ListEnabled(ctx domain.Context) ([]domain.MonitoredCity, error) {
	tracer := otel.Tracer("repo.cities")
	ctx, span := tracer.Start(ctx, "cities.ListEnabled")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "monitored_cities"),
	)

	q := `SELECT id, city_name, city_code, enabled, priority FROM monitored_cities WHERE enabled = true ORDER BY priority DESC, id ASC`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=city.list_enabled: %w", err)
	}
	defer rows.Close()

	var out []domain.MonitoredCity
	for rows.Next() {
		var c domain.MonitoredCity
		if err := rows.Scan(&c.ID, &c.CityName, &c.CityCode, &c.Enabled, &c.Priority); err != nil {
			return nil, fmt.Errorf("op=city.list_enabled_scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=city.list_enabled_rows: %w", err)
	}
	return out, nil
}

// GetEnabledCities satisfies domain.StoreView so the collector can read the
// monitored city list through the same repo the seed binary writes.
func (r *CityRepo) GetEnabledCities(ctx domain.Context) ([]domain.MonitoredCity, error) {
	return r.ListEnabled(ctx)
}

func (r *CityRepo) Upsert(ctx domain.Context, c domain.MonitoredCity) error {
	tracer := otel.Tracer("repo.cities")
	ctx, span := tracer.Start(ctx, "cities.Upsert")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "monitored_cities"),
	)

	q := `INSERT INTO monitored_cities (id, city_name, city_code, enabled, priority)
	      VALUES ($1, $2, $3, $4, $5)
	      ON CONFLICT (id) DO UPDATE SET city_name = $2, city_code = $3, enabled = $4, priority = $5`
	if _, err := r.Pool.Exec(ctx, q, c.ID, c.CityName, c.CityCode, c.Enabled, c.Priority); err != nil {
		return fmt.Errorf("op=city.upsert: %w", err)
	}
	return nil
}
