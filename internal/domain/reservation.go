package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reserved slot
type ReservationStatus string

const (
	// StatusReserved the slot is held by a dossier
	StatusReserved ReservationStatus = "reserved"
	// StatusCancelled the hold was released; the interval no longer blocks new reservations
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is the persisted unit of booking: a concrete [start, end)
// interval at a location held by a dossier, with an optional officiant.
//
// State machine: reserved -> cancelled (via Cancel); no other transitions.
// A second reserve of the same interval beyond the location's capacity must
// fail with a conflict, never silently overwrite.
type Reservation struct {
	ID          int64
	LocationID  int64
	OfficiantID *int64
	HolderID    uuid.UUID // the dossier that holds the slot
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      ReservationStatus

	// Set when a language soft mismatch was explicitly overridden by the operator
	LanguageOverride bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still holds its interval
func (r *Reservation) IsActive() bool {
	return r.Status == StatusReserved
}

// CanBeCancelled returns true if the reservation can be released
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusReserved
}
