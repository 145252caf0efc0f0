package get_eligible_officiants

import (
	"context"

	filterOfficiants "github.com/huwelijksplanner/HP-BookingService/internal/usecase/filter_officiants"
)

type FilterOfficiantsUseCase interface {
	Execute(ctx context.Context, req *filterOfficiants.Request) (*filterOfficiants.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
