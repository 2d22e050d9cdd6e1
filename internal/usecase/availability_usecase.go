// Package usecase defines the application-level interfaces and their
// input/output types; implementations live in usecase/impl.
package usecase

import (
	"context"

	"booking/internal/domain/entity"
)

// AvailabilityOutput is the answer to "what slots can a customer pick from
// right now". Warning is set when the response is degraded (calendar
// disconnected or unreachable); a degraded response is still a success with
// an empty slot list, so the booking page stays usable.
type AvailabilityOutput struct {
	Slots   []entity.Slot
	Warning string
}

// AvailabilityUsecase computes customer-facing availability.
type AvailabilityUsecase interface {
	// GetAvailability returns the bookable slots for the next `days` days.
	GetAvailability(ctx context.Context, days int) (*AvailabilityOutput, error)
}
