package impl

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"booking/internal/domain/entity"
	"booking/internal/domain/service"
	"booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockCredentialRepository struct {
	mock.Mock
}

func (m *mockCredentialRepository) SaveCredential(ctx context.Context, credential *entity.CalendarCredential) error {
	args := m.Called(ctx, credential)

	return args.Error(0)
}

func (m *mockCredentialRepository) FindCredential(ctx context.Context, provider string) (*entity.CalendarCredential, error) {
	args := m.Called(ctx, provider)
	if credential, ok := args.Get(0).(*entity.CalendarCredential); ok {
		return credential, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCredentialRepository) DeleteCredential(ctx context.Context, provider string) error {
	args := m.Called(ctx, provider)

	return args.Error(0)
}

type mockCalendarOAuth struct {
	mock.Mock
}

func (m *mockCalendarOAuth) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockCalendarOAuth) ConsentURL() string {
	return m.Called().String(0)
}

func (m *mockCalendarOAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)

	return args.String(0), args.Error(1)
}

func (m *mockCalendarOAuth) Refresh(ctx context.Context, refreshToken string) (*service.TokenRefresh, error) {
	args := m.Called(ctx, refreshToken)
	if refreshed, ok := args.Get(0).(*service.TokenRefresh); ok {
		return refreshed, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockCalendarProvider struct {
	mock.Mock
}

func (m *mockCalendarProvider) QueryBusy(ctx context.Context, window entity.TimeInterval) ([]entity.TimeInterval, error) {
	args := m.Called(ctx, window)
	if busy, ok := args.Get(0).([]entity.TimeInterval); ok {
		return busy, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCalendarProvider) CreateEvent(ctx context.Context, slot entity.TimeInterval, meta service.EventMetadata) (*service.EventRef, error) {
	args := m.Called(ctx, slot, meta)
	if ref, ok := args.Get(0).(*service.EventRef); ok {
		return ref, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) CreateBooking(ctx context.Context, record *entity.BookingRecord) error {
	args := m.Called(ctx, record)

	return args.Error(0)
}

func (m *mockBookingRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.BookingRecord, error) {
	args := m.Called(ctx, id)
	if record, ok := args.Get(0).(*entity.BookingRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockBookingRepository) FindBookingByEventID(ctx context.Context, eventID string) (*entity.BookingRecord, error) {
	args := m.Called(ctx, eventID)
	if record, ok := args.Get(0).(*entity.BookingRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockBookingRepository) ListBookings(ctx context.Context, limit, offset int) ([]*entity.BookingRecord, error) {
	args := m.Called(ctx, limit, offset)
	if records, ok := args.Get(0).([]*entity.BookingRecord); ok {
		return records, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockBookingNotifier struct {
	mock.Mock
}

func (m *mockBookingNotifier) SendBookingConfirmation(ctx context.Context, record *entity.BookingRecord) error {
	args := m.Called(ctx, record)

	return args.Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishBookingEvent(ctx context.Context, event *service.BookingEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// stubCalendarHealth is a canned-status CalendarUsecase for tests exercising
// the availability and booking services. It counts CheckHealth invocations so
// ordering tests can assert the probe was or was not consulted.
type stubCalendarHealth struct {
	status     *usecase.ConnectionStatus
	checkCalls atomic.Int64
}

func (s *stubCalendarHealth) CheckHealth(ctx context.Context) *usecase.ConnectionStatus {
	s.checkCalls.Add(1)

	return s.status
}

func (s *stubCalendarHealth) ConsentURL() (string, error) { return "", nil }

func (s *stubCalendarHealth) CompleteConsent(ctx context.Context, code string) error { return nil }

func (s *stubCalendarHealth) Disconnect(ctx context.Context) error { return nil }

func connectedHealth() *stubCalendarHealth {
	return &stubCalendarHealth{status: &usecase.ConnectionStatus{Connected: true}}
}

func disconnectedHealth(reason string) *stubCalendarHealth {
	return &stubCalendarHealth{status: &usecase.ConnectionStatus{Connected: false, Reason: reason}}
}
