package filter_officiants

import (
	"context"
	"errors"
	"fmt"

	"github.com/huwelijksplanner/HP-BookingService/internal/availability"
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/internal/integrations/ceremonyservice"
)

// UseCase use case подбора регистраторов, подходящих для церемонии
type UseCase struct {
	resourceRepo    ResourceRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	ceremonyClient  CeremonyServiceClient
	logger          Logger

	minSlotMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	ceremonyClient CeremonyServiceClient,
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
		logger:          logger,
		minSlotMinutes:  minSlotMinutes,
	}
}

// Execute выполняет use case подбора регистраторов.
//
// Жесткие фильтры: регистратор активен, сертифицирован на дату церемонии
// и свободен в интервале [StartTime, EndTime). Языковое несоответствие -
// мягкий фильтр: регистратор остается в выдаче с флагом LanguageMismatch
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FilterOfficiants: user=%s, date=%s, interval=%s-%s, language=%q",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.CeremonyLanguage)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FilterOfficiants: validation failed: %v", err)
		return nil, err
	}

	// 2. Все регистраторы
	officiants, err := uc.resourceRepo.ListByKind(ctx, domain.KindOfficiant)
	if err != nil {
		uc.logger.Error("FilterOfficiants: failed to list officiants: %v", err)
		return nil, fmt.Errorf("%w: failed to list officiants: %v", ErrInternal, err)
	}

	result := make([]Officiant, 0, len(officiants))
	degraded := false

	var requiredLanguages []string
	if req.CeremonyLanguage != "" {
		requiredLanguages = []string{req.CeremonyLanguage}
	}

	for _, officiant := range officiants {
		// Жесткие фильтры: активность и сертификация
		if !officiant.IsActive || !officiant.IsCertifiedOn(req.Date) {
			continue
		}

		available, officiantDegraded, err := uc.isAvailable(ctx, officiant.ID, req)
		if err != nil {
			uc.logger.Error("FilterOfficiants: failed to check officiant id=%d: %v", officiant.ID, err)
			return nil, err
		}
		if officiantDegraded {
			degraded = true
		}
		if !available {
			continue
		}

		result = append(result, Officiant{
			ID:               officiant.ID,
			Name:             officiant.Name,
			Languages:        officiant.Languages,
			LanguageMismatch: !officiant.SpeaksAny(requiredLanguages),
		})
	}

	uc.logger.Info("FilterOfficiants: %d of %d officiants eligible for %s %s-%s (degraded=%v)",
		len(result), len(officiants), req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, degraded)

	return &Response{
		Date:       req.Date,
		Officiants: result,
		Degraded:   degraded,
	}, nil
}

// isAvailable проверяет, что интервал церемонии целиком лежит в окне
// доступности регистратора с учетом его блокировок, активных резерваций
// и подтвержденных церемоний
func (uc *UseCase) isAvailable(ctx context.Context, officiantID int64, req *Request) (bool, bool, error) {
	rules, err := uc.scheduleRepo.ListRulesByResource(ctx, officiantID)
	if err != nil {
		return false, false, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
	}

	blocked, err := uc.scheduleRepo.ListBlockedDatesByResource(ctx, officiantID, req.Date, req.Date)
	if err != nil {
		return false, false, fmt.Errorf("%w: failed to list blocked dates: %v", ErrInternal, err)
	}

	busyPtrs := make([]*domain.BusyInterval, 0)

	// Занятость подтвержденных церемоний; при деградации проверяем без нее
	degraded := false
	busy, err := uc.ceremonyClient.GetBusyIntervalsWithGracefulDegradation(ctx, officiantID, req.Date, req.Date)
	if err != nil {
		if !errors.Is(err, ceremonyservice.ErrServiceDegraded) {
			return false, false, fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
		}
		degraded = true
	}
	for i := range busy {
		busyPtrs = append(busyPtrs, &busy[i])
	}

	// Активные резервации регистратора занимают его так же, как церемонии
	reservations, err := uc.reservationRepo.GetActiveByOfficiantAndRange(ctx, officiantID, req.Date, req.Date)
	if err != nil {
		return false, false, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}
	for _, res := range reservations {
		busyPtrs = append(busyPtrs, &domain.BusyInterval{
			ResourceID: officiantID,
			Date:       res.Date,
			StartTime:  res.StartTime,
			EndTime:    res.EndTime,
		})
	}

	windows, issues := availability.Compose(rules, blocked, busyPtrs, req.Date, req.Date, uc.minSlotMinutes)
	for _, issue := range issues {
		uc.logger.Warn("FilterOfficiants: rule id=%d skipped for officiant id=%d: %v", issue.RuleID, officiantID, issue.Err)
	}

	return availability.ContainsInterval(windows, req.Date, req.StartTime, req.EndTime), degraded, nil
}
