package get_holder_reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByHolder(ctx context.Context, holderID uuid.UUID) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
