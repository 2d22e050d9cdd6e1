// Package service declares the narrow capability interfaces the use cases
// depend on; concrete implementations live under internal/infra.
package service

import (
	"context"
	"time"

	"booking/internal/domain/entity"
)

// EventMetadata carries the customer fields attached to a calendar event.
type EventMetadata struct {
	Name  string
	Email string
	Phone string
	Topic string
}

// EventRef references an event created on the external calendar.
type EventRef struct {
	EventID  string
	MeetLink string
	HTMLLink string
	Start    time.Time
	End      time.Time
}

// CalendarProvider is the complete capability set the booking engine needs
// from the external calendar: a free/busy read and an event write. Keeping
// it this narrow lets tests substitute a fake provider without touching the
// core logic.
type CalendarProvider interface {
	// QueryBusy returns the occupied intervals inside the window.
	QueryBusy(ctx context.Context, window entity.TimeInterval) ([]entity.TimeInterval, error)

	// CreateEvent commits an event for the interval. Not abortable once
	// submitted; an error response does not guarantee the event was not
	// created on the provider side.
	CreateEvent(ctx context.Context, slot entity.TimeInterval, meta EventMetadata) (*EventRef, error)
}
