package domain

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// BusyInterval is time already consumed by a confirmed ceremony.
// Read-only from the engine's perspective; sourced from the booking subsystem.
type BusyInterval struct {
	ResourceID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// AvailabilityWindow is a computed, ephemeral free-time interval.
// Never persisted; recomputed on every query against the current
// rules, blocked dates and busy intervals.
type AvailabilityWindow struct {
	ResourceID int64
	RuleID     int64 // provenance: the rule that produced this window
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// DurationMinutes returns the window length in minutes
func (w *AvailabilityWindow) DurationMinutes() int {
	minutes, err := w.StartTime.MinutesUntil(w.EndTime)
	if err != nil {
		return 0
	}
	return minutes
}

// Contains returns true if [start, end) lies fully inside the window
func (w *AvailabilityWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// Overlaps reports a real intersection between [aStart, aEnd) and [bStart, bEnd).
// Touching boundaries do not count as an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}
