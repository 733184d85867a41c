package domain

import "time"

// Phase classifies a date range against a reference date.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseOngoing
	PhaseEnded
)

// ComputePhase derives the lifecycle phase of a date range. Both boundaries
// are inclusive: today==start and today==end both classify as ongoing.
// Comparisons ignore the time-of-day component.
func ComputePhase(today, start, end time.Time) Phase {
	today = truncateToDate(today)
	start = truncateToDate(start)
	end = truncateToDate(end)

	switch {
	case today.Before(start):
		return PhaseNotStarted
	case today.After(end):
		return PhaseEnded
	default:
		return PhaseOngoing
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
