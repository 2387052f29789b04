// Package mocks provides testify/mock doubles for the domain ports,
// hand-written in the shape `mockery --name=X` would generate (see the
// //go:generate directives in internal/domain/ports.go).
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oricho123/rentifier/internal/domain"
)

// MockSourceRepository mocks domain.SourceRepository.
type MockSourceRepository struct{ mock.Mock }

func (m *MockSourceRepository) ListEnabled(ctx domain.Context) ([]domain.Source, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Source), args.Error(1)
}

func (m *MockSourceRepository) Get(ctx domain.Context, id string) (domain.Source, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Source), args.Error(1)
}

// MockSourceStateRepository mocks domain.SourceStateRepository.
type MockSourceStateRepository struct{ mock.Mock }

func (m *MockSourceStateRepository) Get(ctx domain.Context, sourceID string) (domain.SourceState, error) {
	args := m.Called(ctx, sourceID)
	return args.Get(0).(domain.SourceState), args.Error(1)
}

func (m *MockSourceStateRepository) MarkError(ctx domain.Context, sourceID string, cursor string, runAt time.Time, errMsg string) error {
	return m.Called(ctx, sourceID, cursor, runAt, errMsg).Error(0)
}

func (m *MockSourceStateRepository) MarkSuccess(ctx domain.Context, sourceID string, cursor string, runAt time.Time) error {
	return m.Called(ctx, sourceID, cursor, runAt).Error(0)
}

// MockMonitoredCityRepository mocks domain.MonitoredCityRepository.
type MockMonitoredCityRepository struct{ mock.Mock }

func (m *MockMonitoredCityRepository) ListEnabled(ctx domain.Context) ([]domain.MonitoredCity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MonitoredCity), args.Error(1)
}

func (m *MockMonitoredCityRepository) Upsert(ctx domain.Context, c domain.MonitoredCity) error {
	return m.Called(ctx, c).Error(0)
}

// MockRawListingRepository mocks domain.RawListingRepository.
type MockRawListingRepository struct{ mock.Mock }

func (m *MockRawListingRepository) InsertBatch(ctx domain.Context, rows []domain.RawListing) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

func (m *MockRawListingRepository) ListUnprocessed(ctx domain.Context, limit int) ([]domain.RawListing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.RawListing), args.Error(1)
}

func (m *MockRawListingRepository) MarkProcessed(ctx domain.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// MockListingRepository mocks domain.ListingRepository.
type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Upsert(ctx domain.Context, l domain.Listing) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}

func (m *MockListingRepository) ListSince(ctx domain.Context, since time.Time) ([]domain.Listing, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

// MockFilterRepository mocks domain.FilterRepository.
type MockFilterRepository struct{ mock.Mock }

func (m *MockFilterRepository) ListActiveWithUsers(ctx domain.Context) ([]domain.ActiveFilter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ActiveFilter), args.Error(1)
}

// MockNotificationRepository mocks domain.NotificationRepository.
type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Exists(ctx domain.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Insert(ctx domain.Context, n domain.NotificationSent) error {
	return m.Called(ctx, n).Error(0)
}

// MockWorkerStateRepository mocks domain.WorkerStateRepository.
type MockWorkerStateRepository struct{ mock.Mock }

func (m *MockWorkerStateRepository) Get(ctx domain.Context, workerName string) (domain.WorkerState, error) {
	args := m.Called(ctx, workerName)
	return args.Get(0).(domain.WorkerState), args.Error(1)
}

func (m *MockWorkerStateRepository) MarkSuccess(ctx domain.Context, workerName string, runAt time.Time) error {
	return m.Called(ctx, workerName, runAt).Error(0)
}

// MockChatTransport mocks domain.ChatTransport.
type MockChatTransport struct{ mock.Mock }

func (m *MockChatTransport) SendMessage(ctx domain.Context, chatID, text, parseMode string) domain.DeliveryResult {
	args := m.Called(ctx, chatID, text, parseMode)
	return args.Get(0).(domain.DeliveryResult)
}

func (m *MockChatTransport) SendPhoto(ctx domain.Context, chatID, photoURL, caption, parseMode string) domain.DeliveryResult {
	args := m.Called(ctx, chatID, photoURL, caption, parseMode)
	return args.Get(0).(domain.DeliveryResult)
}

// MockStoreView mocks domain.StoreView.
type MockStoreView struct{ mock.Mock }

func (m *MockStoreView) GetEnabledCities(ctx domain.Context) ([]domain.MonitoredCity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MonitoredCity), args.Error(1)
}
