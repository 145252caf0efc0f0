package reserve_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListRulesByResource(ctx context.Context, resourceID int64) ([]*domain.RecurringRule, error)
	ListBlockedDatesByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.BlockedDate, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	// GetActiveByLocationAndDate внутри транзакции блокирует строки (FOR UPDATE)
	GetActiveByLocationAndDate(ctx context.Context, locationID int64, date time.Time) ([]*domain.Reservation, error)
	GetActiveByOfficiantAndRange(ctx context.Context, officiantID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// CeremonyServiceClient интерфейс клиента для CeremonyService
type CeremonyServiceClient interface {
	GetBusyIntervals(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.BusyInterval, error)
}

// AuditServiceClient интерфейс клиента для AuditService
type AuditServiceClient interface {
	RecordReservationCreated(ctx context.Context, reservationID, locationID int64, holderID uuid.UUID) error
	RecordEligibilityOverride(ctx context.Context, officiantID int64, holderID uuid.UUID, actorID string, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
