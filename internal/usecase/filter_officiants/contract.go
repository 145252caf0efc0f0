package filter_officiants

import (
	"context"
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	ListByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.Resource, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListRulesByResource(ctx context.Context, resourceID int64) ([]*domain.RecurringRule, error)
	ListBlockedDatesByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.BlockedDate, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetActiveByOfficiantAndRange(ctx context.Context, officiantID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// CeremonyServiceClient интерфейс клиента для CeremonyService
type CeremonyServiceClient interface {
	GetBusyIntervalsWithGracefulDegradation(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.BusyInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
