package domain

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// PatternKind identifies the recurrence pattern of a rule
type PatternKind string

const (
	PatternWeekly           PatternKind = "weekly"
	PatternWorkdays         PatternKind = "workdays"
	PatternBiweekly         PatternKind = "biweekly"
	PatternMonthlyByDay     PatternKind = "monthly_by_day"
	PatternMonthlyByWeekday PatternKind = "monthly_by_weekday"
	PatternCustom           PatternKind = "custom"
)

// RecurringRule declares a repeating availability pattern for a resource
//
// Pattern parameter requirements per kind:
//   - weekly, biweekly:      DayOfWeek required
//   - workdays:              no parameters
//   - monthly_by_day:        DayOfMonth required
//   - monthly_by_weekday:    DayOfWeek and WeekOfMonth required
//   - custom:                Expression (RFC 5545 RRULE) required
//
// A rule is never mutated once expanded; expansion is always recomputed
// from the current rule set, never cached.
type RecurringRule struct {
	ID         int64
	ResourceID int64
	Kind       PatternKind

	DayOfWeek   *int // 0=Sunday .. 6=Saturday
	DayOfMonth  *int // 1..31
	WeekOfMonth *int // 1..5 (Nth weekday instance in the month)
	Expression  *string

	StartTime types.TimeString
	EndTime   types.TimeString

	ValidFrom  time.Time
	ValidUntil *time.Time // nil = no expiry

	Description string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidOn returns true if the rule's validity window covers the given date
func (r *RecurringRule) IsValidOn(date time.Time) bool {
	day := truncateToDay(date)
	if day.Before(truncateToDay(r.ValidFrom)) {
		return false
	}
	if r.ValidUntil != nil && day.After(truncateToDay(*r.ValidUntil)) {
		return false
	}
	return true
}
