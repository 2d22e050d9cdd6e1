// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// TimeInterval is a half-open range [Start, End) in the calendar's home
// timezone. It is used both for busy intervals read from the external
// calendar and for candidate booking slots.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share any instant.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// IsValid reports whether the interval is well-formed (end strictly after start).
func (i TimeInterval) IsValid() bool {
	return !i.Start.IsZero() && !i.End.IsZero() && i.End.After(i.Start)
}

// Duration returns the length of the interval.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Slot is a candidate bookable interval. Slots are ephemeral: they are
// computed per availability request and never persisted. A slot that falls
// inside the minimum-notice window or overlaps a busy interval is excluded
// at generation time, so every emitted slot has Bookable set.
type Slot struct {
	TimeInterval
	Bookable bool
}
