package compose_availability

import (
	"context"
	"time"

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

// CeremonyServiceClient интерфейс клиента для CeremonyService
type CeremonyServiceClient interface {
	GetBusyIntervalsWithGracefulDegradation(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.BusyInterval, error)
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
