package get_availability

import (
	"context"

	composeAvailability "github.com/huwelijksplanner/HP-BookingService/internal/usecase/compose_availability"
)

type ComposeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *composeAvailability.Request) (*composeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
