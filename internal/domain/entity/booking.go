package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingRequest is a customer-submitted reservation attempt. It is a
// transient input to the booking pipeline and is not persisted until it
// becomes a BookingRecord.
type BookingRequest struct {
	Start time.Time
	End   time.Time
	Email string
	Name  string
	Phone string
	Topic string
}

// Interval returns the requested time range as a half-open interval.
func (r *BookingRequest) Interval() TimeInterval {
	return TimeInterval{Start: r.Start, End: r.End}
}

// AttendeeName returns the display name used on the calendar event,
// falling back to the local part of the email address.
func (r *BookingRequest) AttendeeName() string {
	if r.Name != "" {
		return r.Name
	}
	for i := 0; i < len(r.Email); i++ {
		if r.Email[i] == '@' {
			return r.Email[:i]
		}
	}

	return r.Email
}

// BookingRecord is the committed reservation: the external calendar event
// reference plus the original request. It is created only after every guard
// check passed and the event exists on the provider side, and is immutable
// once created.
type BookingRecord struct {
	ID        uuid.UUID
	EventID   string
	MeetLink  string
	HTMLLink  string
	Start     time.Time
	End       time.Time
	Email     string
	Name      string
	Phone     string
	Topic     string
	CreatedAt time.Time
}
