package service

import (
	"context"

	"booking/internal/domain/entity"
)

// BookingNotifier sends the customer-facing confirmation for a committed
// booking. Called fire-and-forget: a notification failure never rolls back
// the booking.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, record *entity.BookingRecord) error
}
