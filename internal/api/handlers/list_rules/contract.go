package list_rules

import (
	"context"

	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListRules(ctx context.Context, resourceID int64) ([]*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
