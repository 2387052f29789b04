package postgres

import (
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

// FilterRepo implements domain.FilterRepository over a pgx pool. Filters
// and users are owned by the external chat UI; this module only reads them.
type FilterRepo struct{ Pool PgxPool }

// NewFilterRepo constructs a FilterRepo with the given pool.
func NewFilterRepo(p PgxPool) *FilterRepo { return &FilterRepo{Pool: p} }

func (r *FilterRepo) ListActiveWithUsers(ctx domain.Context) ([]domain.ActiveFilter, error) {
	tracer := otel.Tracer("repo.filters")
	ctx, span := tracer.Start(ctx, "filters.ListActiveWithUsers")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "filters"),
	)

	const q = `
SELECT f.id, f.user_id, f.name, f.min_price, f.max_price, f.min_bedrooms, f.max_bedrooms,
       f.cities, f.neighborhoods, f.keywords, f.must_have_tags, f.exclude_tags, f.enabled, f.created_at,
       u.id, u.chat_id, u.display_name, u.created_at
FROM filters f
JOIN users u ON u.id = f.user_id
WHERE f.enabled = true
ORDER BY f.id ASC`

	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=filter.list_active_with_users: %w", err)
	}
	defer rows.Close()

	var out []domain.ActiveFilter
	for rows.Next() {
		var af domain.ActiveFilter
		var cities, neighborhoods, keywords, mustHave, exclude []byte
		if err := rows.Scan(
			&af.Filter.ID, &af.Filter.UserID, &af.Filter.Name, &af.Filter.MinPrice, &af.Filter.MaxPrice,
			&af.Filter.MinBedrooms, &af.Filter.MaxBedrooms, &cities, &neighborhoods, &keywords, &mustHave,
			&exclude, &af.Filter.Enabled, &af.Filter.CreatedAt,
			&af.User.ID, &af.User.ChatID, &af.User.DisplayName, &af.User.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("op=filter.list_active_with_users_scan: %w", err)
		}
		for _, pair := range []struct {
			raw  []byte
			dest *[]string
		}{
			{cities, &af.Filter.Cities},
			{neighborhoods, &af.Filter.Neighborhoods},
			{keywords, &af.Filter.Keywords},
			{mustHave, &af.Filter.MustHaveTags},
			{exclude, &af.Filter.ExcludeTags},
		} {
			if len(pair.raw) == 0 {
				continue
			}
			if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
				return nil, fmt.Errorf("op=filter.list_active_with_users_unmarshal: %w", err)
			}
		}
		out = append(out, af)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=filter.list_active_with_users_rows: %w", err)
	}
	return out, nil
}
