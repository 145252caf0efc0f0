package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	resourceRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/resource"
	scheduleRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/schedule"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
)

// Service сервис управления правилами повторения и блокировками дат
// Это внешний CRUD-контур движка: движок доступности только читает
// актуальное состояние правил, сервис отвечает за их валидность
type Service struct {
	scheduleRepo ScheduleRepository
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	resourceRepo ResourceRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// CreateRule создает правило повторения с полной валидацией определения
// Некорректные правила отклоняются здесь и никогда не доходят до расширения
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: resource=%d, kind=%s, window=%s-%s",
		req.ResourceID, req.Kind, req.StartTime, req.EndTime)

	if err := validateRuleRequest(req); err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.resourceRepo.GetByID(ctx, req.ResourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("CreateRule: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("CreateRule: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	rule := &domain.RecurringRule{
		ResourceID:  req.ResourceID,
		Kind:        domain.PatternKind(req.Kind),
		DayOfWeek:   req.DayOfWeek,
		DayOfMonth:  req.DayOfMonth,
		WeekOfMonth: req.WeekOfMonth,
		Expression:  req.Expression,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Description: req.Description,
		IsActive:    true,
	}

	created, err := s.scheduleRepo.CreateRule(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: successfully created rule id=%d for resource=%d", created.ID, req.ResourceID)
	return models.FromDomainRule(created), nil
}

// ListRules получает все правила ресурса
func (s *Service) ListRules(ctx context.Context, resourceID int64) ([]*models.RuleResponse, error) {
	s.logger.Info("ListRules: fetching rules for resource=%d", resourceID)

	rules, err := s.scheduleRepo.ListRulesByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("ListRules: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, models.FromDomainRule(rule))
	}

	return result, nil
}

// DeleteRule удаляет правило повторения
func (s *Service) DeleteRule(ctx context.Context, ruleID int64) error {
	s.logger.Info("DeleteRule: deleting rule id=%d", ruleID)

	if err := s.scheduleRepo.DeleteRule(ctx, ruleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found", ruleID)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRule: successfully deleted rule id=%d", ruleID)
	return nil
}

// CreateBlockedDate создает блокировку даты для ресурса
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: resource=%d, date=%s, allDay=%t",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.AllDay)

	if err := validateBlockedDateRequest(req); err != nil {
		s.logger.Warn("CreateBlockedDate: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.resourceRepo.GetByID(ctx, req.ResourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("CreateBlockedDate: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("CreateBlockedDate: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	blocked := &domain.BlockedDate{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		AllDay:     req.AllDay,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	}

	created, err := s.scheduleRepo.CreateBlockedDate(ctx, blocked)
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: successfully created blocked date id=%d for resource=%d",
		created.ID, req.ResourceID)
	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate удаляет блокировку даты
func (s *Service) DeleteBlockedDate(ctx context.Context, blockedDateID int64) error {
	s.logger.Info("DeleteBlockedDate: deleting blocked date id=%d", blockedDateID)

	if err := s.scheduleRepo.DeleteBlockedDate(ctx, blockedDateID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("DeleteBlockedDate: blocked date id=%d not found", blockedDateID)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", blockedDateID, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted blocked date id=%d", blockedDateID)
	return nil
}
