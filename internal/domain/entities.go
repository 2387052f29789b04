package domain

import "time"

// Source identifies a marketplace integration. Created by an operator seed;
// never deleted while rows reference it.
type Source struct {
	ID        string
	Name      string
	Enabled   bool
	CreatedAt time.Time
}

// WorkerStatus captures the last-run outcome of a collector source or the
// notifier's own watermark.
type WorkerStatus string

// Worker status values.
const (
	StatusOK    WorkerStatus = "ok"
	StatusError WorkerStatus = "error"
)

// SourceState is 1:1 with Source. Owned exclusively by the collector; the
// cursor is opaque bytes produced and consumed only by the owning connector.
type SourceState struct {
	SourceID   string
	Cursor     string
	LastRunAt  *time.Time
	LastStatus WorkerStatus
	LastError  string
}

// MonitoredCity is an operator-curated city the source-specific connector
// iterates over.
type MonitoredCity struct {
	ID       string
	CityName string
	CityCode string
	Enabled  bool
	Priority int
}

// RawListing is a source's unprocessed candidate blob, persisted verbatim by
// the collector. (SourceID, SourceItemID) is unique; duplicate inserts are
// silently dropped by the store.
type RawListing struct {
	ID           string
	SourceID     string
	SourceItemID string
	URL          string
	RawJSON      string
	FetchedAt    time.Time
	ProcessedAt  *time.Time
}

// PricePeriod enumerates the billing cadence of a listing's price.
type PricePeriod string

// Price period values.
const (
	PriceMonthly PricePeriod = "monthly"
	PriceWeekly  PricePeriod = "weekly"
	PriceDaily   PricePeriod = "daily"
)

// Listing is the canonical, deduplicated, processed row. (SourceID,
// SourceItemID) is unique; upsert replaces all mutable fields but preserves
// IngestedAt.
type Listing struct {
	ID             string
	SourceID       string
	SourceItemID   string
	Title          string
	Description    string
	Price          *float64
	Currency       string
	PricePeriod    PricePeriod
	Bedrooms       *float64
	City           string
	Neighborhood   string
	Street         string
	HouseNumber    string
	Floor          *int
	SquareMeters   *float64
	PropertyType   string
	Latitude       *float64
	Longitude      *float64
	ImageURL       string
	Tags           []string
	RelevanceScore *float64
	URL            string
	PostedAt       *time.Time
	IngestedAt     time.Time
}

// User is a chat-transport subscriber. Owned by the external chat UI.
type User struct {
	ID          string
	ChatID      string
	DisplayName string
	CreatedAt   time.Time
}

// Filter is a user's saved search. Owned by the external chat UI. Array
// fields are stored as JSON text in the store; nil/empty means "no
// constraint on this dimension".
type Filter struct {
	ID            string
	UserID        string
	Name          string
	MinPrice      *float64 `validate:"omitempty,gte=0"`
	MaxPrice      *float64 `validate:"omitempty,gte=0"`
	MinBedrooms   *float64 `validate:"omitempty,gte=0"`
	MaxBedrooms   *float64 `validate:"omitempty,gte=0"`
	Cities        []string
	Neighborhoods []string
	Keywords      []string
	MustHaveTags  []string
	ExcludeTags   []string
	Enabled       bool
	CreatedAt     time.Time
}

// NotificationChannel enumerates delivery channels.
type NotificationChannel string

// Notification channel values.
const (
	ChannelText  NotificationChannel = "text"
	ChannelPhoto NotificationChannel = "photo"
)

// NotificationSent records a delivered (user, listing) pair. Primary key
// (UserID, ListingID) — at most one notification per pair, ever.
type NotificationSent struct {
	UserID    string
	ListingID string
	FilterID  *string
	SentAt    time.Time
	Channel   NotificationChannel
}

// WorkerState tracks a named worker's last run, used by the notifier as its
// watermark.
type WorkerState struct {
	WorkerName string
	LastRunAt  *time.Time
	LastStatus WorkerStatus
	LastError  string
}

// Notifier watermark worker name.
const NotifierWorkerName = "notify"
