package impl

import (
	"context"
	"log/slog"
	"time"

	"booking/internal/domain/entity"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/repository"
	"booking/internal/domain/schedule"
	"booking/internal/domain/service"
	"booking/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultBookingPageSize = 50
	maxBookingPageSize     = 200
)

type bookingService struct {
	calendarHealth usecase.CalendarUsecase
	provider       service.CalendarProvider
	bookingRepo    repository.BookingRepository
	notifier       service.BookingNotifier
	publisher      service.EventPublisher
	logger         *slog.Logger
	now            func() time.Time
}

// NewBookingService creates the booking transaction service.
func NewBookingService(
	calendarHealth usecase.CalendarUsecase,
	provider service.CalendarProvider,
	bookingRepo repository.BookingRepository,
	notifier service.BookingNotifier,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.BookingUsecase {
	return &bookingService{
		calendarHealth: calendarHealth,
		provider:       provider,
		bookingRepo:    bookingRepo,
		notifier:       notifier,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

// Book runs the five-step guard pipeline. The order is deliberate and must
// not change: the notice-window rule is checked before calendar connectivity
// so a too-soon request is rejected deterministically regardless of the
// external calendar's state. Steps 1–4 have no side effects; only step 5
// mutates anything.
func (s *bookingService) Book(ctx context.Context, input *usecase.BookInput) (*entity.BookingRecord, error) {
	// Step 1: well-formed, end-after-start timestamps.
	request, err := s.parseRequest(input)
	if err != nil {
		return nil, err
	}

	// Step 2: minimum-notice rule.
	now := s.now()
	if request.Start.Before(now.Add(schedule.MinNotice)) {
		return nil, domainerrors.ErrNoticeTooShort
	}

	// Step 3: empirically verified calendar connectivity.
	status := s.calendarHealth.CheckHealth(ctx)
	if !status.Connected {
		return nil, domainerrors.ErrCalendarUnavailable.WithDetails(status.Reason)
	}

	// Step 4: re-verify the interval is still free, immediately before the
	// commit. Two customers may be shown the same slot; only the first to
	// pass this check may commit.
	interval := request.Interval()
	busy, err := s.provider.QueryBusy(ctx, interval)
	if err != nil {
		return nil, domainerrors.ErrCalendarUnavailable.WithDetails(err.Error())
	}
	if len(busy) > 0 {
		return nil, domainerrors.ErrSlotConflict
	}

	// Step 5: commit. Not abortable once submitted; on error the event may
	// or may not exist provider-side, so log everything needed for manual
	// reconciliation.
	ref, err := s.provider.CreateEvent(ctx, interval, service.EventMetadata{
		Name:  request.AttendeeName(),
		Email: request.Email,
		Phone: request.Phone,
		Topic: request.Topic,
	})
	if err != nil {
		s.logger.Error("calendar event creation failed after pre-checks passed",
			slog.Time("start", request.Start),
			slog.Time("end", request.End),
			slog.String("email", request.Email),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrCommitFailed.WithDetails(err.Error())
	}

	record := &entity.BookingRecord{
		ID:        uuid.New(),
		EventID:   ref.EventID,
		MeetLink:  ref.MeetLink,
		HTMLLink:  ref.HTMLLink,
		Start:     request.Start,
		End:       request.End,
		Email:     request.Email,
		Name:      request.AttendeeName(),
		Phone:     request.Phone,
		Topic:     request.Topic,
		CreatedAt: now,
	}

	// The event already exists on the calendar; a local persistence failure
	// must not fail the booking, only be reconciled manually.
	if err := s.bookingRepo.CreateBooking(ctx, record); err != nil {
		s.logger.Error("booking record persistence failed, calendar event exists",
			slog.String("event_id", record.EventID),
			slog.String("email", record.Email),
			slog.Any("error", err),
		)
	}

	s.confirm(ctx, record)

	return record, nil
}

// GetBooking retrieves a committed booking record.
func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*entity.BookingRecord, error) {
	return s.bookingRepo.FindBookingByID(ctx, id)
}

// ListBookings returns committed booking records, newest first.
func (s *bookingService) ListBookings(ctx context.Context, limit, offset int) ([]*entity.BookingRecord, error) {
	if limit <= 0 {
		limit = defaultBookingPageSize
	}
	if limit > maxBookingPageSize {
		limit = maxBookingPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.bookingRepo.ListBookings(ctx, limit, offset)
}

// parseRequest is step 1 of the pipeline: parse and sanity-check the raw input.
func (s *bookingService) parseRequest(input *usecase.BookInput) (*entity.BookingRequest, error) {
	start, err := schedule.ParseTimestamp(input.Start, s.logger)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}
	end, err := schedule.ParseTimestamp(input.End, s.logger)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}
	request := &entity.BookingRequest{
		Start: start,
		End:   end,
		Email: input.Email,
		Name:  input.Name,
		Phone: input.Phone,
		Topic: input.Topic,
	}
	if !request.Interval().IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithDetails("end must be after start")
	}

	return request, nil
}

// confirm fires the post-commit side effects: the customer confirmation and
// the booking event. Both are best-effort; their failure is logged and never
// rolls back the committed booking.
func (s *bookingService) confirm(ctx context.Context, record *entity.BookingRecord) {
	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, record); err != nil {
			s.logger.Warn("booking confirmation notification failed",
				slog.String("booking_id", record.ID.String()),
				slog.String("event_id", record.EventID),
				slog.String("email", record.Email),
				slog.Any("error", err),
			)
		}
	}

	if s.publisher != nil {
		event := &service.BookingEvent{
			BookingID: record.ID.String(),
			EventID:   record.EventID,
			Email:     record.Email,
			Start:     record.Start,
			End:       record.End,
		}
		if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
			s.logger.Warn("booking event publication failed",
				slog.String("booking_id", record.ID.String()),
				slog.Any("error", err),
			)
		}
	}
}
