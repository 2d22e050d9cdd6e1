package repository

import (
	"context"

	"booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrBookingNotFound is returned when a booking record is not found.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository persists committed booking records. Records exist for
// reconciliation and reporting only; the external calendar remains the sole
// source of truth for slot occupancy.
type BookingRepository interface {
	// CreateBooking persists a committed booking record.
	CreateBooking(ctx context.Context, record *entity.BookingRecord) error

	// FindBookingByID retrieves a booking record by its ID.
	FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.BookingRecord, error)

	// FindBookingByEventID retrieves a booking record by its external
	// calendar event reference.
	FindBookingByEventID(ctx context.Context, eventID string) (*entity.BookingRecord, error)

	// ListBookings returns booking records ordered by start time descending.
	ListBookings(ctx context.Context, limit, offset int) ([]*entity.BookingRecord, error)
}
