package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oricho123/rentifier/internal/domain"
)

const pgUniqueViolation = "23505"

// NotificationRepo implements domain.NotificationRepository over a pgx pool.
type NotificationRepo struct{ Pool PgxPool }

// NewNotificationRepo constructs a NotificationRepo with the given pool.
func NewNotificationRepo(p PgxPool) *NotificationRepo { return &NotificationRepo{Pool: p} }

func (r *NotificationRepo) Exists(ctx domain.Context, userID, listingID string) (bool, error) {
	tracer := otel.Tracer("repo.notifications")
	ctx, span := tracer.Start(ctx, "notifications.Exists")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "notifications_sent"),
	)

	q := `SELECT EXISTS(SELECT 1 FROM notifications_sent WHERE user_id = $1 AND listing_id = $2)`
	row := r.Pool.QueryRow(ctx, q, userID, listingID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("op=notification.exists: %w", err)
	}
	return exists, nil
}

// Insert records a delivery. A unique-violation on the (user_id, listing_id)
// PK is translated to domain.ErrConflict — an expected race between
// overlapping notifier runs, not a failure (§7).
func (r *NotificationRepo) Insert(ctx domain.Context, n domain.NotificationSent) error {
	tracer := otel.Tracer("repo.notifications")
	ctx, span := tracer.Start(ctx, "notifications.Insert")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "notifications_sent"),
	)

	q := `INSERT INTO notifications_sent (user_id, listing_id, filter_id, sent_at, channel) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.Pool.Exec(ctx, q, n.UserID, n.ListingID, n.FilterID, n.SentAt, n.Channel)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("op=notification.insert: %w", domain.ErrConflict)
		}
		return fmt.Errorf("op=notification.insert: %w", err)
	}
	return nil
}
