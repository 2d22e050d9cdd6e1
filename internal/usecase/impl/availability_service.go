package impl

import (
	"context"
	"log/slog"
	"time"

	"booking/internal/domain/entity"
	"booking/internal/domain/schedule"
	"booking/internal/domain/service"
	"booking/internal/usecase"
)

const (
	// defaultLookaheadDays is used when the caller does not bound the window.
	defaultLookaheadDays = 14
	// maxLookaheadDays caps the free/busy query window.
	maxLookaheadDays = 60
	// minLeadHours is the caller-level minimum lead time. The effective
	// window start is max of this and the non-negotiable notice rule, which
	// the generator re-checks independently anyway.
	minLeadHours = 12
)

type availabilityService struct {
	calendarHealth usecase.CalendarUsecase
	provider       service.CalendarProvider
	logger         *slog.Logger
	now            func() time.Time
}

// NewAvailabilityService creates the availability computation service.
func NewAvailabilityService(
	calendarHealth usecase.CalendarUsecase,
	provider service.CalendarProvider,
	logger *slog.Logger,
) usecase.AvailabilityUsecase {
	return &availabilityService{
		calendarHealth: calendarHealth,
		provider:       provider,
		logger:         logger,
		now:            time.Now,
	}
}

// GetAvailability answers "what slots can a customer pick from right now".
// Calendar connectivity problems degrade to an empty-but-successful response
// with a warning instead of failing the request, so the booking page keeps
// rendering in read-only mode.
func (s *availabilityService) GetAvailability(ctx context.Context, days int) (*usecase.AvailabilityOutput, error) {
	if days <= 0 {
		days = defaultLookaheadDays
	}
	if days > maxLookaheadDays {
		days = maxLookaheadDays
	}

	status := s.calendarHealth.CheckHealth(ctx)
	if !status.Connected {
		s.logger.Warn("availability requested while calendar disconnected",
			slog.String("reason", status.Reason),
		)

		return &usecase.AvailabilityOutput{Slots: []entity.Slot{}, Warning: status.Reason}, nil
	}

	now := s.now()
	window := entity.TimeInterval{Start: now, End: now.AddDate(0, 0, days)}

	busy, err := s.provider.QueryBusy(ctx, window)
	if err != nil {
		s.logger.Error("free/busy query failed, returning degraded availability",
			slog.Int("days", days),
			slog.Any("error", err),
		)

		return &usecase.AvailabilityOutput{Slots: []entity.Slot{}, Warning: reasonProviderFailure}, nil
	}

	leadHours := minLeadHours
	if schedule.MinNoticeHours > leadHours {
		leadHours = schedule.MinNoticeHours
	}
	windowStart := now.Add(time.Duration(leadHours) * time.Hour)

	// The generator guarantees ascending order; returned verbatim.
	slots := make([]entity.Slot, 0)
	for slot := range schedule.Generate(windowStart, window.End, busy, now) {
		slots = append(slots, slot)
	}

	return &usecase.AvailabilityOutput{Slots: slots}, nil
}
