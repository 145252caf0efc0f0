package compose_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/huwelijksplanner/HP-BookingService/internal/availability"
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	resourceRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/resource"
	"github.com/huwelijksplanner/HP-BookingService/internal/integrations/ceremonyservice"
)

// UseCase use case расчета доступности ресурса на горизонте планирования
type UseCase struct {
	resourceRepo   ResourceRepository
	scheduleRepo   ScheduleRepository
	ceremonyClient CeremonyServiceClient
	timeProvider   TimeProvider
	logger         Logger

	horizonDays    int
	minSlotMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	scheduleRepo ScheduleRepository,
	ceremonyClient CeremonyServiceClient,
	logger Logger,
	horizonDays int,
	minSlotMinutes int,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	if minSlotMinutes <= 0 {
		minSlotMinutes = domain.MinViableSlotMinutes
	}

	return &UseCase{
		resourceRepo:   resourceRepo,
		scheduleRepo:   scheduleRepo,
		ceremonyClient: ceremonyClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		horizonDays:    horizonDays,
		minSlotMinutes: minSlotMinutes,
	}
}

// Execute выполняет use case расчета доступности.
//
// Окна всегда вычисляются заново из текущих правил, блокировок и занятости:
// результат нигде не кэшируется и не сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComposeAvailability: user=%s, resource=%d, from=%s, to=%s",
		req.UserID, req.ResourceID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComposeAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим период к фактическим границам
	now := uc.timeProvider.Now()
	from, to, err := resolvePeriod(req, now, uc.horizonDays)
	if err != nil {
		uc.logger.Warn("ComposeAvailability: period resolution failed: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("ComposeAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("ComposeAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// Неактивный ресурс не имеет доступности
	if !resource.IsActive {
		uc.logger.Info("ComposeAvailability: resource id=%d is inactive", req.ResourceID)
		return &Response{
			ResourceID: req.ResourceID,
			From:       from,
			To:         to,
			Windows:    []Window{},
		}, nil
	}

	// 4. Загружаем правила и блокировки
	rules, err := uc.scheduleRepo.ListRulesByResource(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("ComposeAvailability: failed to list rules for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
	}

	blocked, err := uc.scheduleRepo.ListBlockedDatesByResource(ctx, req.ResourceID, from, to)
	if err != nil {
		uc.logger.Error("ComposeAvailability: failed to list blocked dates for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to list blocked dates: %v", ErrInternal, err)
	}

	// 5. Получаем занятость подтвержденных церемоний.
	// При недоступности CeremonyService расчет продолжается без занятости,
	// клиент получает флаг Degraded
	degraded := false
	busy, err := uc.ceremonyClient.GetBusyIntervalsWithGracefulDegradation(ctx, req.ResourceID, from, to)
	if err != nil {
		if !errors.Is(err, ceremonyservice.ErrServiceDegraded) {
			uc.logger.Error("ComposeAvailability: failed to get busy intervals for resource id=%d: %v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
		}
		degraded = true
		busy = nil
	}

	busyPtrs := make([]*domain.BusyInterval, len(busy))
	for i := range busy {
		busyPtrs[i] = &busy[i]
	}

	// 6. Композиция окон
	windows, issues := availability.Compose(rules, blocked, busyPtrs, from, to, uc.minSlotMinutes)

	// Сломанные правила деградируют по одному и не роняют весь расчет
	for _, issue := range issues {
		uc.logger.Warn("ComposeAvailability: rule id=%d skipped: %v", issue.RuleID, issue.Err)
	}

	uc.logger.Info("ComposeAvailability: composed %d windows for resource=%d (%d rule issues, degraded=%v)",
		len(windows), req.ResourceID, len(issues), degraded)

	return &Response{
		ResourceID: req.ResourceID,
		From:       from,
		To:         to,
		Windows:    toWindows(windows),
		Blocked:    toBlockedSpans(blocked),
		Degraded:   degraded,
	}, nil
}
