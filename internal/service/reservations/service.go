package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	reservationRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/reservation"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/reservations/models"
)

// Service сервис для чтения и отмены резерваций
// Создание резервации идёт через отдельный usecase с сериализуемой транзакцией
type Service struct {
	reservationRepo ReservationRepository
	auditSink       AuditSink
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	auditSink AuditSink,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		auditSink:       auditSink,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// GetByHolder получает резервации дела (dossier), включая отменённые
func (s *Service) GetByHolder(ctx context.Context, holderID uuid.UUID) (*models.ReservationListResponse, error) {
	s.logger.Info("GetByHolder: fetching reservations for holder=%s", holderID)

	if holderID == uuid.Nil {
		return nil, fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByHolder(ctx, holderID)
	if err != nil {
		s.logger.Error("GetByHolder: repository error for holder=%s: %v", holderID, err)
		return nil, fmt.Errorf("%w: GetByHolder - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByHolder: successfully fetched %d reservations for holder=%s",
		len(reservations), holderID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel освобождает слот: статус cancelled, вместимость локации восстановлена.
// Повторная резервация того же интервала после отмены возможна
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", reservationID)

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, res.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.Reason); err != nil {
		if errors.Is(err, reservationRepo.ErrCannotCancel) {
			// Гонка cancel/cancel: вторая отмена детерминированно проигрывает
			s.logger.Warn("Cancel: reservation id=%d already released", reservationID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Аудит отмен best-effort: недоступность журнала не отменяет отмену
	if err := s.auditSink.RecordCancellation(ctx, reservationID, res.HolderID, req.Reason); err != nil {
		s.logger.Error("Cancel: failed to record cancellation audit for id=%d: %v", reservationID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}
