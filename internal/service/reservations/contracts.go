package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByHolder(ctx context.Context, holderID uuid.UUID) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// AuditSink интерфейс аудит-журнала (внешний сервис)
type AuditSink interface {
	RecordCancellation(ctx context.Context, reservationID int64, holderID uuid.UUID, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
