package usecase

import (
	"context"

	"booking/internal/domain/entity"

	"github.com/google/uuid"
)

// BookInput is a customer-submitted booking. Start and End are raw ISO-8601
// strings; parsing them is the first step of the booking pipeline so that a
// malformed timestamp surfaces as InvalidInput rather than a binding error.
type BookInput struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Topic string `json:"topic"`
}

// BookingUsecase runs the booking transaction pipeline.
type BookingUsecase interface {
	// Book validates the request through the ordered guard checks and, if
	// all pass, commits the event to the external calendar. Failures map to
	// the distinct outcomes in internal/domain/errors.
	Book(ctx context.Context, input *BookInput) (*entity.BookingRecord, error)

	// GetBooking retrieves a committed booking record.
	GetBooking(ctx context.Context, id uuid.UUID) (*entity.BookingRecord, error)

	// ListBookings returns committed booking records, newest first.
	ListBookings(ctx context.Context, limit, offset int) ([]*entity.BookingRecord, error)
}
