package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePhase(t *testing.T) {
	start := date(2026, time.June, 10)
	end := date(2026, time.June, 20)

	cases := []struct {
		name  string
		today time.Time
		want  Phase
	}{
		{"before start", date(2026, time.June, 9), PhaseNotStarted},
		{"on start", date(2026, time.June, 10), PhaseOngoing},
		{"mid range", date(2026, time.June, 15), PhaseOngoing},
		{"on end", date(2026, time.June, 20), PhaseOngoing},
		{"after end", date(2026, time.June, 21), PhaseEnded},
		{"far before", date(2025, time.January, 1), PhaseNotStarted},
		{"far after", date(2027, time.January, 1), PhaseEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputePhase(tc.today, start, end))
		})
	}
}

func TestComputePhaseIgnoresTimeOfDay(t *testing.T) {
	start := date(2026, time.June, 10)
	end := date(2026, time.June, 10)

	// Late in the evening of the end date still counts as ongoing.
	today := time.Date(2026, time.June, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, PhaseOngoing, ComputePhase(today, start, end))

	// One second into the next day no longer does.
	today = time.Date(2026, time.June, 11, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, PhaseEnded, ComputePhase(today, start, end))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, TripStatusNotStarted, TripStatusFor(PhaseNotStarted))
	assert.Equal(t, TripStatusOngoing, TripStatusFor(PhaseOngoing))
	assert.Equal(t, TripStatusEnded, TripStatusFor(PhaseEnded))

	assert.Equal(t, CustomizedTripNotStarted, CustomizedTripStatusFor(PhaseNotStarted))
	assert.Equal(t, CustomizedTripOngoing, CustomizedTripStatusFor(PhaseOngoing))
	assert.Equal(t, CustomizedTripEnded, CustomizedTripStatusFor(PhaseEnded))
}
