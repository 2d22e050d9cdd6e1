// Package schedule computes bookable time slots against a set of busy
// intervals. It owns the minimum-notice business rule: the 48-hour lead time
// is a compiled-in constant shared by the generator and the booking guard so
// it cannot drift or be relaxed through configuration or request parameters.
package schedule

import (
	"iter"
	"sync"
	"time"

	"booking/internal/domain/entity"
)

const (
	// MinNoticeHours is the shortest allowed lead time, in hours, between
	// the current moment and a bookable slot's start. Intentionally a
	// constant: it must never be overridable at runtime.
	MinNoticeHours = 48

	// MinNotice is MinNoticeHours as a duration.
	MinNotice = MinNoticeHours * time.Hour

	// SlotDuration is the fixed granularity of bookable slots.
	SlotDuration = 60 * time.Minute

	workStartHour = 9
	workEndHour   = 18
)

// HomeTimezone is the calendar account's fixed home timezone. Timestamps
// without an explicit offset are interpreted in this zone; the system never
// infers a timezone from request headers or client locale.
const HomeTimezone = "Asia/Jerusalem"

var homeLocation = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(HomeTimezone)
	if err != nil {
		// Jerusalem is UTC+2 outside DST; only reachable without zoneinfo.
		return time.FixedZone("IST", 2*60*60)
	}

	return loc
})

// HomeLocation returns the calendar's home timezone.
func HomeLocation() *time.Location {
	return homeLocation()
}

// workDays are the bookable weekdays (Sunday through Thursday).
var workDays = map[time.Weekday]bool{
	time.Sunday:    true,
	time.Monday:    true,
	time.Tuesday:   true,
	time.Wednesday: true,
	time.Thursday:  true,
}

// NextFullHour rounds t up to the next top-of-hour instant in the home
// timezone. A timestamp already on the hour is returned unchanged.
func NextFullHour(t time.Time) time.Time {
	t = t.In(HomeLocation())
	truncated := t.Truncate(time.Hour)
	if truncated.Equal(t) {
		return t
	}

	return truncated.Add(time.Hour)
}

// Generate produces the ordered sequence of bookable slots inside
// [windowStart, windowEnd). Candidates are emitted at SlotDuration
// granularity aligned to the top of the hour, restricted to business hours
// on work days, and a candidate is excluded (not merely flagged) when it
// overlaps a busy interval or starts inside the minimum-notice window.
//
// The notice rule is re-checked here against now regardless of how the
// caller derived windowStart. The returned sequence is
// lazy, finite and restartable; an empty sequence is a valid result meaning
// "no availability in window".
func Generate(windowStart, windowEnd time.Time, busy []entity.TimeInterval, now time.Time) iter.Seq[entity.Slot] {
	earliest := now.Add(MinNotice)
	if windowStart.Before(earliest) {
		windowStart = earliest
	}
	start := NextFullHour(windowStart)
	end := windowEnd.In(HomeLocation())

	// Copy so a caller mutating its slice cannot corrupt a restarted walk.
	busyIntervals := make([]entity.TimeInterval, len(busy))
	copy(busyIntervals, busy)

	return func(yield func(entity.Slot) bool) {
		for current := start; current.Before(end); current = current.Add(SlotDuration) {
			slot := entity.TimeInterval{Start: current, End: current.Add(SlotDuration)}
			if slot.End.After(end) {
				return
			}
			if !isBusinessSlot(slot) {
				continue
			}
			if overlapsAny(slot, busyIntervals) {
				continue
			}
			if !yield(entity.Slot{TimeInterval: slot, Bookable: true}) {
				return
			}
		}
	}
}

// isBusinessSlot reports whether the slot lies entirely inside the
// Sun–Thu 09:00–18:00 business window of the home timezone.
func isBusinessSlot(slot entity.TimeInterval) bool {
	start := slot.Start.In(HomeLocation())
	if !workDays[start.Weekday()] {
		return false
	}
	if start.Hour() < workStartHour || start.Hour() >= workEndHour {
		return false
	}
	// The last bookable slot ends exactly at closing time.
	endOfDay := time.Date(start.Year(), start.Month(), start.Day(), workEndHour, 0, 0, 0, HomeLocation())

	return !slot.End.In(HomeLocation()).After(endOfDay)
}

func overlapsAny(slot entity.TimeInterval, busy []entity.TimeInterval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}

	return false
}
