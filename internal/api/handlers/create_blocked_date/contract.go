package create_blocked_date

import (
	"context"

	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
