package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/availability"
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	reservationRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/resource"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// UseCase use case резервации слота для церемонии
type UseCase struct {
	resourceRepo    ResourceRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	ceremonyClient  CeremonyServiceClient
	auditClient     AuditServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger

	minSlotMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	ceremonyClient CeremonyServiceClient,
	auditClient AuditServiceClient,
	txManager TransactionManager,
	logger Logger,
	minSlotMinutes int,
) *UseCase {
	if minSlotMinutes <= 0 {
		minSlotMinutes = domain.MinViableSlotMinutes
	}

	return &UseCase{
		resourceRepo:    resourceRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		ceremonyClient:  ceremonyClient,
		auditClient:     auditClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		minSlotMinutes:  minSlotMinutes,
	}
}

// Execute выполняет use case резервации слота.
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// доступность пересчитывается внутри транзакции по текущему состоянию,
// присланным клиентом окнам никогда не доверяем
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%s, holder=%s, location=%d, date=%s, interval=%s-%s",
		req.UserID, req.HolderID, req.LocationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDateNotInPast(req.Date, now); err != nil {
		uc.logger.Warn("ReserveSlot: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем локацию
	location, err := uc.resourceRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("ReserveSlot: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	if !location.IsLocation() {
		uc.logger.Warn("ReserveSlot: resource id=%d is not a location", req.LocationID)
		return nil, ErrLocationNotFound
	}
	if !location.IsActive {
		uc.logger.Warn("ReserveSlot: location id=%d is inactive", req.LocationID)
		return nil, ErrSlotNotAvailable
	}

	// 4. Валидация регистратора: жесткие фильтры и языковое несоответствие
	var officiant *domain.Resource
	if req.OfficiantID != nil {
		officiant, err = uc.validateOfficiant(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	// 5. Занятость подтвержденных церемоний - строго, без graceful degradation.
	// Писать в расписание без актуальной занятости небезопасно
	locationBusy, err := uc.ceremonyClient.GetBusyIntervals(ctx, req.LocationID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("ReserveSlot: ceremony schedule unavailable for location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
	}

	var officiantBusy []domain.BusyInterval
	if officiant != nil {
		officiantBusy, err = uc.ceremonyClient.GetBusyIntervals(ctx, officiant.ID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("ReserveSlot: ceremony schedule unavailable for officiant id=%d: %v", officiant.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
		}
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные резервации локации на дату с блокировкой (FOR UPDATE)
		locationReservations, err := uc.reservationRepo.GetActiveByLocationAndDate(txCtx, req.LocationID, req.Date)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get location reservations: %v", err)
			return fmt.Errorf("%w: failed to get location reservations: %v", ErrInternal, err)
		}

		// 6.2. Интервал должен целиком лежать в окне доступности локации,
		// пересчитанном внутри транзакции
		ok, err := uc.intervalInWindows(txCtx, req.LocationID, req.Date, req.StartTime, req.EndTime, locationBusy, nil)
		if err != nil {
			return err
		}
		if !ok {
			uc.logger.Warn("ReserveSlot: interval %s-%s is outside location id=%d availability",
				req.StartTime, req.EndTime, req.LocationID)
			return ErrSlotNotAvailable
		}

		// 6.3. Проверяем вместимость локации
		overlapping := countOverlappingReservations(req.StartTime, req.EndTime, locationReservations)
		capacity := location.EffectiveCapacity()
		if overlapping >= capacity {
			uc.logger.Warn("ReserveSlot: location id=%d capacity exhausted, %d/%d spots taken",
				req.LocationID, overlapping, capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("ReserveSlot: location id=%d capacity ok, %d/%d spots taken",
			req.LocationID, overlapping, capacity)

		// 6.4. Регистратор должен быть свободен с учетом его активных резерваций
		if officiant != nil {
			officiantReservations, err := uc.reservationRepo.GetActiveByOfficiantAndRange(txCtx, officiant.ID, req.Date, req.Date)
			if err != nil {
				uc.logger.Error("ReserveSlot: failed to get officiant reservations: %v", err)
				return fmt.Errorf("%w: failed to get officiant reservations: %v", ErrInternal, err)
			}

			ok, err := uc.intervalInWindows(txCtx, officiant.ID, req.Date, req.StartTime, req.EndTime, officiantBusy, officiantReservations)
			if err != nil {
				return err
			}
			if !ok {
				uc.logger.Warn("ReserveSlot: officiant id=%d is not available at %s %s-%s",
					officiant.ID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
				return ErrOfficiantNotEligible
			}
		}

		// 6.5. Создаем резервацию
		reservation := &domain.Reservation{
			LocationID:       req.LocationID,
			OfficiantID:      req.OfficiantID,
			HolderID:         req.HolderID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Status:           domain.StatusReserved,
			LanguageOverride: req.Override,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				uc.logger.Warn("ReserveSlot: lost the race for location id=%d at %s %s-%s",
					req.LocationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
				return ErrSlotConflict
			}
			uc.logger.Error("ReserveSlot: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReserveSlot: successfully created reservation id=%d", result.ID)

	// 7. Аудит не блокирует бронирование: ошибки только логируются
	if err := uc.auditClient.RecordReservationCreated(ctx, result.ID, result.LocationID, result.HolderID); err != nil {
		uc.logger.Error("ReserveSlot: failed to audit reservation id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:               result.ID,
		LocationID:       result.LocationID,
		OfficiantID:      result.OfficiantID,
		HolderID:         result.HolderID,
		Date:             result.Date,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		Status:           string(result.Status),
		LanguageOverride: result.LanguageOverride,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// validateOfficiant применяет жесткие фильтры (активность, сертификация)
// и языковой мягкий фильтр к выбранному регистратору
func (uc *UseCase) validateOfficiant(ctx context.Context, req *Request) (*domain.Resource, error) {
	officiant, err := uc.resourceRepo.GetByID(ctx, *req.OfficiantID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("ReserveSlot: officiant id=%d not found", *req.OfficiantID)
			return nil, ErrOfficiantNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get officiant id=%d: %v", *req.OfficiantID, err)
		return nil, fmt.Errorf("%w: failed to get officiant: %v", ErrInternal, err)
	}
	if !officiant.IsOfficiant() {
		uc.logger.Warn("ReserveSlot: resource id=%d is not an officiant", *req.OfficiantID)
		return nil, ErrOfficiantNotFound
	}

	// Жесткие фильтры непереопределяемы
	if !officiant.IsActive || !officiant.IsCertifiedOn(req.Date) {
		uc.logger.Warn("ReserveSlot: officiant id=%d is inactive or not certified on %s",
			officiant.ID, req.Date.Format(domain.DateFormat))
		return nil, ErrOfficiantNotEligible
	}

	// Языковое несоответствие мягкое: требует явного подтверждения
	if req.CeremonyLanguage != "" && !officiant.SpeaksAny([]string{req.CeremonyLanguage}) {
		if !req.Override {
			uc.logger.Warn("ReserveSlot: officiant id=%d does not serve language %q, override required",
				officiant.ID, req.CeremonyLanguage)
			return nil, ErrOverrideRequired
		}

		// Каждое переопределение оставляет след в аудите
		if err := uc.auditClient.RecordEligibilityOverride(ctx, officiant.ID, req.HolderID, req.UserID, req.OverrideReason); err != nil {
			uc.logger.Error("ReserveSlot: failed to audit override for officiant id=%d: %v", officiant.ID, err)
		}
		uc.logger.Info("ReserveSlot: language mismatch for officiant id=%d overridden by user=%s",
			officiant.ID, req.UserID)
	}

	return officiant, nil
}

// intervalInWindows пересчитывает окна доступности ресурса на дату и проверяет,
// что [start, end) целиком лежит в одном из них
func (uc *UseCase) intervalInWindows(
	ctx context.Context,
	resourceID int64,
	date time.Time,
	start, end types.TimeString,
	busy []domain.BusyInterval,
	reservations []*domain.Reservation,
) (bool, error) {
	rules, err := uc.scheduleRepo.ListRulesByResource(ctx, resourceID)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to list rules for resource id=%d: %v", resourceID, err)
		return false, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
	}

	blocked, err := uc.scheduleRepo.ListBlockedDatesByResource(ctx, resourceID, date, date)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to list blocked dates for resource id=%d: %v", resourceID, err)
		return false, fmt.Errorf("%w: failed to list blocked dates: %v", ErrInternal, err)
	}

	busyPtrs := make([]*domain.BusyInterval, 0, len(busy)+len(reservations))
	for i := range busy {
		busyPtrs = append(busyPtrs, &busy[i])
	}
	for _, res := range reservations {
		busyPtrs = append(busyPtrs, &domain.BusyInterval{
			ResourceID: resourceID,
			Date:       res.Date,
			StartTime:  res.StartTime,
			EndTime:    res.EndTime,
		})
	}

	windows, issues := availability.Compose(rules, blocked, busyPtrs, date, date, uc.minSlotMinutes)
	for _, issue := range issues {
		uc.logger.Warn("ReserveSlot: rule id=%d skipped for resource id=%d: %v", issue.RuleID, resourceID, issue.Err)
	}

	return availability.ContainsInterval(windows, date, start, end), nil
}

// countOverlappingReservations подсчитывает активные резервации, реально
// пересекающиеся с [start, end). Граничащие интервалы не считаются пересечением
func countOverlappingReservations(start, end types.TimeString, reservations []*domain.Reservation) int {
	count := 0
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		if domain.Overlaps(start, end, res.StartTime, res.EndTime) {
			count++
		}
	}
	return count
}
