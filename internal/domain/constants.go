package domain

// Default engine parameters
const (
	// DefaultHorizonDays rolling availability horizon from "today"
	DefaultHorizonDays = 90

	// MinViableSlotMinutes windows shorter than this are never reported:
	// a sliver too short to host a ceremony
	MinViableSlotMinutes = 15

	DefaultLocationCapacity = 1
)

// Business validation constants
const (
	MinDayOfWeek   = 0
	MaxDayOfWeek   = 6
	MinDayOfMonth  = 1
	MaxDayOfMonth  = 31
	MinWeekOfMonth = 1
	MaxWeekOfMonth = 5

	MaxReasonLength      = 500
	MaxDescriptionLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveReservationStatuses statuses that occupy a slot interval.
// Used when counting overlaps against a location's capacity.
var ActiveReservationStatuses = []ReservationStatus{
	StatusReserved,
}
