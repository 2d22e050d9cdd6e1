package schedule

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// layouts accepted for timestamps without a UTC offset. Such values are
// interpreted in the calendar's home timezone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values carrying an explicit
// offset are taken verbatim; offset-less values are assumed to be in the
// calendar's home timezone, and that assumption is logged as a warning on
// every invocation; silent misinterpretation previously produced incorrect
// availability.
func ParseTimestamp(value string, logger *slog.Logger) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, HomeLocation()); err == nil {
			logger.Warn("timestamp has no UTC offset, assuming calendar home timezone",
				slog.String("value", value),
				slog.String("timezone", HomeTimezone),
			)

			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("unparsable ISO-8601 timestamp: %q", value)
}
