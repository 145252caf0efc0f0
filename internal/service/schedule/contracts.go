package schedule

import (
	"context"
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория правил и блокировок
type ScheduleRepository interface {
	CreateRule(ctx context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error)
	GetRuleByID(ctx context.Context, id int64) (*domain.RecurringRule, error)
	ListRulesByResource(ctx context.Context, resourceID int64) ([]*domain.RecurringRule, error)
	DeleteRule(ctx context.Context, id int64) error
	CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	ListBlockedDatesByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id int64) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
