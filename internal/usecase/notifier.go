package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"

	"github.com/oricho123/rentifier/internal/adapter/observability"
	"github.com/oricho123/rentifier/internal/domain"
)

// filterValidator enforces the struct-tag constraints on domain.Filter
// (§4.4) — the filter's owning chat UI writes rows to Postgres directly, so
// this is the one point in the Go codebase that ever sees a Filter value
// before it's used to match listings.
var filterValidator = validator.New()

// NotifierSummary is the structured per-run metric set of §4.4.
type NotifierSummary struct {
	Sent             int
	Failed           int
	ImageSuccess     int
	ImageFallback    int
	NoImage          int
	ImageSuccessRate float64
}

// NotifierService evaluates every (listing, filter) pair discovered since
// the last watermark and delivers at most one notification per (user,
// listing) pair, ever (§4.4, P3).
type NotifierService struct {
	Listings      domain.ListingRepository
	Filters       domain.FilterRepository
	Notifications domain.NotificationRepository
	WorkerStates  domain.WorkerStateRepository
	Transport     domain.ChatTransport
	ParseMode     string
	DefaultWindow time.Duration
	Publisher     EventPublisher
	now           func() time.Time
}

// NewNotifierService constructs a NotifierService, defaulting DefaultWindow
// to 24h (§4.4) when unset.
func NewNotifierService(listings domain.ListingRepository, filters domain.FilterRepository, notifications domain.NotificationRepository, workerStates domain.WorkerStateRepository, transport domain.ChatTransport, parseMode string, defaultWindow time.Duration) NotifierService {
	if defaultWindow <= 0 {
		defaultWindow = 24 * time.Hour
	}
	return NotifierService{
		Listings:      listings,
		Filters:       filters,
		Notifications: notifications,
		WorkerStates:  workerStates,
		Transport:     transport,
		ParseMode:     parseMode,
		DefaultWindow: defaultWindow,
		Publisher:     NoopPublisher{},
		now:           time.Now,
	}
}

// Run evaluates the candidate window against every active filter and
// delivers new matches (§4.4). The watermark only advances on full, clean
// completion — a fatal error leaves it untouched so the next run repeats
// the same window.
func (s NotifierService) Run(ctx domain.Context) (NotifierSummary, error) {
	tr := otel.Tracer("usecase.notifier")
	ctx, span := tr.Start(ctx, "NotifierService.Run")
	defer span.End()

	lg := observability.LoggerFromContext(ctx)
	summary := NotifierSummary{}
	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	currentRun := clock().UTC()

	state, err := s.WorkerStates.Get(ctx, domain.NotifierWorkerName)
	if err != nil {
		return summary, fmt.Errorf("op=notifier.Run: %w", err)
	}
	since := currentRun.Add(-s.DefaultWindow)
	if state.LastRunAt != nil {
		since = *state.LastRunAt
	}

	listings, err := s.Listings.ListSince(ctx, since)
	if err != nil {
		return summary, fmt.Errorf("op=notifier.Run: %w", err)
	}

	rawFilters, err := s.Filters.ListActiveWithUsers(ctx)
	if err != nil {
		return summary, fmt.Errorf("op=notifier.Run: %w", err)
	}
	activeFilters := make([]domain.ActiveFilter, 0, len(rawFilters))
	for _, af := range rawFilters {
		if err := filterValidator.Struct(af.Filter); err != nil {
			lg.Warn("skipping malformed filter",
				slog.String("filter_id", af.Filter.ID), slog.Any("error", err))
			continue
		}
		activeFilters = append(activeFilters, af)
	}

	for _, listing := range listings {
		for _, af := range activeFilters {
			if !domain.Matches(listing, af.Filter) {
				continue
			}

			exists, err := s.Notifications.Exists(ctx, af.User.ID, listing.ID)
			if err != nil {
				lg.Error("failed to check notification dedup",
					slog.String("user_id", af.User.ID), slog.String("listing_id", listing.ID), slog.Any("error", err))
				summary.Failed++
				continue
			}
			if exists {
				continue
			}

			channel, imgOutcome, deliverErr := s.deliver(ctx, af.User, listing)
			if deliverErr != nil {
				lg.Warn("notification delivery failed",
					slog.String("user_id", af.User.ID), slog.String("listing_id", listing.ID), slog.Any("error", deliverErr))
				summary.Failed++
				observability.NotifierFailedTotal.Inc()
				s.recordImageOutcome(&summary, imgOutcome)
				continue
			}

			filterID := af.Filter.ID
			n := domain.NotificationSent{
				UserID:    af.User.ID,
				ListingID: listing.ID,
				FilterID:  &filterID,
				SentAt:    clock().UTC(),
				Channel:   channel,
			}
			if err := s.Notifications.Insert(ctx, n); err != nil && !errors.Is(err, domain.ErrConflict) {
				lg.Error("failed to record notification",
					slog.String("user_id", af.User.ID), slog.String("listing_id", listing.ID), slog.Any("error", err))
				summary.Failed++
				continue
			}

			summary.Sent++
			observability.NotifierSentTotal.WithLabelValues(string(channel)).Inc()
			s.recordImageOutcome(&summary, imgOutcome)
			s.Publisher.Publish(ctx, "notifier.notification_sent", map[string]any{
				"user_id": af.User.ID, "listing_id": listing.ID, "channel": string(channel),
			})
		}
	}

	if total := summary.ImageSuccess + summary.ImageFallback; total > 0 {
		summary.ImageSuccessRate = float64(summary.ImageSuccess) / float64(total)
	}

	if err := s.WorkerStates.MarkSuccess(ctx, domain.NotifierWorkerName, currentRun); err != nil {
		return summary, fmt.Errorf("op=notifier.Run: %w", err)
	}

	lg.Info("notifier run complete",
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed),
		slog.Int("image_success", summary.ImageSuccess),
		slog.Int("image_fallback", summary.ImageFallback),
		slog.Int("no_image", summary.NoImage),
		slog.Float64("image_success_rate", summary.ImageSuccessRate))
	return summary, nil
}

type imageOutcome string

const (
	imageOutcomeSuccess  imageOutcome = "image_success"
	imageOutcomeFallback imageOutcome = "image_fallback"
	imageOutcomeNone     imageOutcome = "no_image"
)

func (s NotifierService) recordImageOutcome(summary *NotifierSummary, outcome imageOutcome) {
	switch outcome {
	case imageOutcomeSuccess:
		summary.ImageSuccess++
	case imageOutcomeFallback:
		summary.ImageFallback++
	case imageOutcomeNone:
		summary.NoImage++
	}
	if outcome != "" {
		observability.NotifierImageOutcomeTotal.WithLabelValues(string(outcome)).Inc()
	}
}

// deliver sends a single listing to a single user, implementing §4.4 step e:
// photo-with-caption when an image is present, falling back to text-only
// only on a non-retryable photo failure, never on a retryable one (the next
// run's dedup check redrives it instead).
func (s NotifierService) deliver(ctx domain.Context, user domain.User, listing domain.Listing) (domain.NotificationChannel, imageOutcome, error) {
	rendered := RenderListing(listing)

	if rendered.ImageURL == "" {
		res := s.Transport.SendMessage(ctx, user.ChatID, rendered.Text, s.ParseMode)
		if !res.Success {
			return "", imageOutcomeNone, deliveryError(res)
		}
		return domain.ChannelText, imageOutcomeNone, nil
	}

	res := s.Transport.SendPhoto(ctx, user.ChatID, rendered.ImageURL, rendered.Text, s.ParseMode)
	if res.Success {
		return domain.ChannelPhoto, imageOutcomeSuccess, nil
	}
	if res.Retryable {
		// Deferred to the next run's dedup check; not counted in any image
		// outcome bucket since delivery hasn't actually been resolved yet.
		return "", "", deliveryError(res)
	}

	// Non-retryable photo failure (bad image, size, wrong file): fall back
	// to text-only per §4.4 step e.
	fallback := s.Transport.SendMessage(ctx, user.ChatID, rendered.Text, s.ParseMode)
	if !fallback.Success {
		return "", imageOutcomeFallback, deliveryError(fallback)
	}
	return domain.ChannelText, imageOutcomeFallback, nil
}

func deliveryError(res domain.DeliveryResult) error {
	if res.Err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, res.Err)
	}
	return domain.ErrTransport
}
