package service

import (
	"context"
	"time"
)

// BookingEvent is published after a booking commits so downstream CRM
// consumers can react asynchronously.
type BookingEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	BookingID string    `json:"booking_id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBookingEvent publishes a confirmed-booking event for async processing
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
