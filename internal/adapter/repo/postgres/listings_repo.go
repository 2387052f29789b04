package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

// ListingRepo implements domain.ListingRepository over a pgx pool.
type ListingRepo struct{ Pool PgxPool }

// NewListingRepo constructs a ListingRepo with the given pool.
func NewListingRepo(p PgxPool) *ListingRepo { return &ListingRepo{Pool: p} }

// Upsert inserts or updates a listing by (source_id, source_item_id),
// preserving ingested_at across updates (P5): the UPDATE clause simply never
// touches ingested_at, so Postgres keeps the original value.
func (r *ListingRepo) Upsert(ctx domain.Context, l domain.Listing) (string, error) {
	tracer := otel.Tracer("repo.listings")
	ctx, span := tracer.Start(ctx, "listings.Upsert")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "listings"),
	)

	id := l.ID
	if id == "" {
		id = ulid.Make().String()
	}
	tags, err := json.Marshal(l.Tags)
	if err != nil {
		return "", fmt.Errorf("op=listing.upsert.marshal_tags: %w", err)
	}

	const q = `
INSERT INTO listings (
	id, source_id, source_item_id, title, description, price, currency, price_period,
	bedrooms, city, neighborhood, street, house_number, floor, square_meters, property_type,
	latitude, longitude, image_url, tags, relevance_score, url, posted_at, ingested_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, now()
)
ON CONFLICT (source_id, source_item_id) DO UPDATE SET
	title = $4, description = $5, price = $6, currency = $7, price_period = $8,
	bedrooms = $9, city = $10, neighborhood = $11, street = $12, house_number = $13,
	floor = $14, square_meters = $15, property_type = $16, latitude = $17, longitude = $18,
	image_url = $19, tags = $20, relevance_score = $21, url = $22, posted_at = $23
RETURNING id`

	row := r.Pool.QueryRow(ctx, q,
		id, l.SourceID, l.SourceItemID, l.Title, l.Description, l.Price, l.Currency, l.PricePeriod,
		l.Bedrooms, l.City, l.Neighborhood, l.Street, l.HouseNumber, l.Floor, l.SquareMeters, l.PropertyType,
		l.Latitude, l.Longitude, l.ImageURL, tags, l.RelevanceScore, l.URL, l.PostedAt,
	)
	var persistedID string
	if err := row.Scan(&persistedID); err != nil {
		return "", fmt.Errorf("op=listing.upsert: %w", err)
	}
	return persistedID, nil
}

func (r *ListingRepo) ListSince(ctx domain.Context, since time.Time) ([]domain.Listing, error) {
	tracer := otel.Tracer("repo.listings")
	ctx, span := tracer.Start(ctx, "listings.ListSince")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "listings"),
	)

	const q = `
SELECT id, source_id, source_item_id, title, description, price, currency, price_period,
       bedrooms, city, neighborhood, street, house_number, floor, square_meters, property_type,
       latitude, longitude, image_url, tags, relevance_score, url, posted_at, ingested_at
FROM listings WHERE ingested_at > $1 ORDER BY ingested_at DESC`

	rows, err := r.Pool.Query(ctx, q, since)
	if err != nil {
		return nil, fmt.Errorf("op=listing.list_since: %w", err)
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var l domain.Listing
		var tags []byte
		if err := rows.Scan(
			&l.ID, &l.SourceID, &l.SourceItemID, &l.Title, &l.Description, &l.Price, &l.Currency, &l.PricePeriod,
			&l.Bedrooms, &l.City, &l.Neighborhood, &l.Street, &l.HouseNumber, &l.Floor, &l.SquareMeters, &l.PropertyType,
			&l.Latitude, &l.Longitude, &l.ImageURL, &tags, &l.RelevanceScore, &l.URL, &l.PostedAt, &l.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("op=listing.list_since_scan: %w", err)
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &l.Tags); err != nil {
				return nil, fmt.Errorf("op=listing.list_since_unmarshal_tags: %w", err)
			}
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=listing.list_since_rows: %w", err)
	}
	return out, nil
}
