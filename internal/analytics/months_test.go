package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		label string
		want  time.Time
	}{
		{"Janv 2025", date(2025, time.January)},
		{"Fev 2025", date(2025, time.February)},
		{"Mars 2025", date(2025, time.March)},
		{"Avr 2025", date(2025, time.April)},
		{"Mai 2025", date(2025, time.May)},
		{"Juin 2025", date(2025, time.June)},
		{"Juil 2025", date(2025, time.July)},
		{"Aout 2025", date(2025, time.August)},
		{"Sept 2025", date(2025, time.September)},
		{"Oct 2025", date(2025, time.October)},
		{"Nov 2025", date(2025, time.November)},
		{"Dec 2025", date(2025, time.December)},
		// canonical labels pass through the table
		{"Jan 2024", date(2024, time.January)},
		{"Feb 2024", date(2024, time.February)},
		{"Jul 2024", date(2024, time.July)},
		{"Aug 2024", date(2024, time.August)},
		// exporter and hand-edited variants
		{"Aou 2024", date(2024, time.August)},
		{"Août 2024", date(2024, time.August)},
		{"Fév 2024", date(2024, time.February)},
		{"juil 2024", date(2024, time.July)},
		{"  Mars   2023 ", date(2023, time.March)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseMonth(tt.label)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseMonthFormatError(t *testing.T) {
	for _, label := range []string{"2024", "", "Jan", "Jan 2024 1", "Foo 2024", "Jan 24", "Jan abcd"} {
		t.Run(label, func(t *testing.T) {
			_, err := ParseMonth(label)
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe), "expected *FormatError, got %T", err)
			assert.Equal(t, label, fe.Label)
			assert.Contains(t, err.Error(), "invalid date format")
		})
	}
}

func TestFormatMonthRoundTrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		d := date(2025, m)
		label := FormatMonth(d)

		got, err := ParseMonth(label)
		require.NoError(t, err, label)
		assert.True(t, d.Equal(got), "%s parsed to %v", label, got)
	}

	assert.Equal(t, "Juil 2025", FormatMonth(date(2025, time.July)))
	assert.Equal(t, "Dec 2024", FormatMonth(date(2024, time.December)))
}

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
