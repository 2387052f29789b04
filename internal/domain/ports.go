package domain

import "time"

//go:generate mockery --name=SourceRepository --with-expecter --filename=source_repository_mock.go
//go:generate mockery --name=SourceStateRepository --with-expecter --filename=source_state_repository_mock.go
//go:generate mockery --name=MonitoredCityRepository --with-expecter --filename=monitored_city_repository_mock.go
//go:generate mockery --name=RawListingRepository --with-expecter --filename=raw_listing_repository_mock.go
//go:generate mockery --name=ListingRepository --with-expecter --filename=listing_repository_mock.go
//go:generate mockery --name=FilterRepository --with-expecter --filename=filter_repository_mock.go
//go:generate mockery --name=NotificationRepository --with-expecter --filename=notification_repository_mock.go
//go:generate mockery --name=WorkerStateRepository --with-expecter --filename=worker_state_repository_mock.go
//go:generate mockery --name=ChatTransport --with-expecter --filename=chat_transport_mock.go

// SourceRepository manages Source rows.
type SourceRepository interface {
	// ListEnabled returns enabled sources ordered by id ascending.
	ListEnabled(ctx Context) ([]Source, error)
	// Get loads a source by id.
	Get(ctx Context, id string) (Source, error)
}

// SourceStateRepository manages the collector's per-source cursor and run
// status. Collector-only writer.
type SourceStateRepository interface {
	// Get loads a source's state, returning the zero value (empty cursor) if
	// no row exists yet.
	Get(ctx Context, sourceID string) (SourceState, error)
	// MarkError records a failed fetch. cursor is still persisted (it carries
	// the connector's circuit-breaker counters even on failure, per §4.1) even
	// though the fetch produced no new candidates.
	MarkError(ctx Context, sourceID string, cursor string, runAt time.Time, errMsg string) error
	// MarkSuccess advances the cursor and records a successful fetch.
	MarkSuccess(ctx Context, sourceID string, cursor string, runAt time.Time) error
}

// MonitoredCityRepository exposes the operator-curated city list. Read-mostly;
// only cmd/seed writes it.
type MonitoredCityRepository interface {
	// ListEnabled returns enabled cities ordered priority-descending,
	// id-ascending, matching the reference connector's round-robin order.
	ListEnabled(ctx Context) ([]MonitoredCity, error)
	// Upsert inserts or updates a city by (ID).
	Upsert(ctx Context, c MonitoredCity) error
}

// RawListingRepository manages unprocessed candidate rows. Collector-only
// inserter; processor-only mutator of ProcessedAt.
type RawListingRepository interface {
	// InsertBatch inserts candidate rows, silently ignoring duplicates on
	// (SourceID, SourceItemID). Returns the number of rows actually inserted.
	InsertBatch(ctx Context, rows []RawListing) (int, error)
	// ListUnprocessed returns up to limit rows with ProcessedAt = NULL,
	// ordered by FetchedAt ascending.
	ListUnprocessed(ctx Context, limit int) ([]RawListing, error)
	// MarkProcessed sets ProcessedAt=now for a single row.
	MarkProcessed(ctx Context, id string, at time.Time) error
}

// ListingRepository manages canonical listing rows. Processor-only writer.
type ListingRepository interface {
	// Upsert inserts or updates by (SourceID, SourceItemID), preserving
	// IngestedAt across updates. Returns the persisted row's id.
	Upsert(ctx Context, l Listing) (string, error)
	// ListSince returns listings with IngestedAt > since, newest first.
	ListSince(ctx Context, since time.Time) ([]Listing, error)
}

// ActiveFilter pairs a Filter with its owning User for the notifier's join.
type ActiveFilter struct {
	Filter Filter
	User   User
}

// FilterRepository manages Filter rows. Owned by the external chat UI; the
// notifier only reads.
type FilterRepository interface {
	// ListActiveWithUsers returns enabled filters joined to their owning
	// user, ordered by filter id ascending.
	ListActiveWithUsers(ctx Context) ([]ActiveFilter, error)
}

// NotificationRepository manages NotificationSent rows. Notifier-only writer.
type NotificationRepository interface {
	// Exists reports whether (userID, listingID) has already been notified.
	Exists(ctx Context, userID, listingID string) (bool, error)
	// Insert records a delivery. Returns ErrConflict if the pair already
	// exists (PK violation), which callers treat as an expected race, not a
	// failure.
	Insert(ctx Context, n NotificationSent) error
}

// WorkerStateRepository manages the notifier's watermark row.
type WorkerStateRepository interface {
	// Get loads a worker's state, returning the zero value if no row exists.
	Get(ctx Context, workerName string) (WorkerState, error)
	// MarkSuccess advances last_run_at and clears any error.
	MarkSuccess(ctx Context, workerName string, runAt time.Time) error
}

// DeliveryResult is the outcome of a single chat-transport send.
type DeliveryResult struct {
	Success        bool
	MessageID      string
	Err            error
	Retryable      bool
	ImageAvailable bool
}

// ChatTransport abstracts the external chat bot's delivery surface (§6):
// "deliver a text + optional photo to a chat_id; report success/failure".
// The interactive command surface (welcome, filter CRUD, menus) lives
// entirely outside this module.
type ChatTransport interface {
	// SendMessage delivers a text-only notification.
	SendMessage(ctx Context, chatID, text, parseMode string) DeliveryResult
	// SendPhoto delivers a photo with a caption.
	SendPhoto(ctx Context, chatID, photoURL, caption, parseMode string) DeliveryResult
}
