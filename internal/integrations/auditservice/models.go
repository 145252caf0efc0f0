package auditservice

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event событие аудита, отправляемое в AuditService
type Event struct {
	Kind          string    `json:"kind"`
	ReservationID int64     `json:"reservationId,omitempty"`
	ResourceID    int64     `json:"resourceId,omitempty"`
	HolderID      string    `json:"holderId,omitempty"`
	ActorID       string    `json:"actorId,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Виды событий аудита
const (
	KindReservationCreated   = "reservation.created"
	KindReservationCancelled = "reservation.cancelled"
	KindEligibilityOverride  = "eligibility.override"
)
