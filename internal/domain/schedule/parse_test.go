package schedule

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseTimestamp_ExplicitOffsetTakenVerbatim(t *testing.T) {
	parsed, err := ParseTimestamp("2026-02-24T12:00:00+05:00", discardLogger())
	require.NoError(t, err)

	expected := time.Date(2026, time.February, 24, 7, 0, 0, 0, time.UTC)
	assert.True(t, parsed.Equal(expected))
}

func TestParseTimestamp_UTC(t *testing.T) {
	parsed, err := ParseTimestamp("2026-02-24T12:00:00Z", discardLogger())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2026, time.February, 24, 12, 0, 0, 0, time.UTC)))
}

func TestParseTimestamp_NaiveAssumesHomeTimezone(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"with seconds", "2026-02-24T12:00:00"},
		{"without seconds", "2026-02-24T12:00"},
	}

	expected := time.Date(2026, time.February, 24, 12, 0, 0, 0, HomeLocation())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTimestamp(tt.value, discardLogger())
			require.NoError(t, err)
			assert.True(t, parsed.Equal(expected))
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, value := range []string{"", "not-a-time", "2026-24-02T12:00:00", "24/02/2026 12:00"} {
		_, err := ParseTimestamp(value, discardLogger())
		assert.Error(t, err, "value %q should not parse", value)
	}
}
