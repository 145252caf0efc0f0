package schedule

import (
	"fmt"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
	"github.com/teambition/rrule-go"
)

// validateRuleRequest проверяет определение правила при создании.
// Некорректное правило отклоняется здесь и никогда не доходит до расширения
func validateRuleRequest(req *models.CreateRuleRequest) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidRuleDefinition)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidRuleDefinition)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidRuleDefinition, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidRuleDefinition, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidRuleDefinition)
	}

	if req.ValidFrom.IsZero() {
		return fmt.Errorf("%w: validFrom is required", ErrInvalidRuleDefinition)
	}
	if req.ValidUntil != nil && req.ValidUntil.Before(req.ValidFrom) {
		return fmt.Errorf("%w: validUntil is before validFrom", ErrInvalidRuleDefinition)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidRuleDefinition)
	}

	return validatePatternParams(req)
}

// validatePatternParams проверяет обязательные и запрещённые параметры паттерна
// в зависимости от вида правила
func validatePatternParams(req *models.CreateRuleRequest) error {
	kind := domain.PatternKind(req.Kind)

	switch kind {
	case domain.PatternWeekly, domain.PatternBiweekly:
		if req.DayOfWeek == nil {
			return fmt.Errorf("%w: %s rule requires dayOfWeek", ErrInvalidRuleDefinition, kind)
		}
		if err := validateDayOfWeek(*req.DayOfWeek); err != nil {
			return err
		}
		if req.DayOfMonth != nil || req.WeekOfMonth != nil {
			return fmt.Errorf("%w: %s rule forbids dayOfMonth and weekOfMonth", ErrInvalidRuleDefinition, kind)
		}

	case domain.PatternWorkdays:
		if req.DayOfWeek != nil || req.DayOfMonth != nil || req.WeekOfMonth != nil {
			return fmt.Errorf("%w: workdays rule forbids pattern parameters", ErrInvalidRuleDefinition)
		}

	case domain.PatternMonthlyByDay:
		if req.DayOfMonth == nil {
			return fmt.Errorf("%w: monthly_by_day rule requires dayOfMonth", ErrInvalidRuleDefinition)
		}
		if *req.DayOfMonth < domain.MinDayOfMonth || *req.DayOfMonth > domain.MaxDayOfMonth {
			return fmt.Errorf("%w: dayOfMonth must be between %d and %d",
				ErrInvalidRuleDefinition, domain.MinDayOfMonth, domain.MaxDayOfMonth)
		}
		if req.DayOfWeek != nil || req.WeekOfMonth != nil {
			return fmt.Errorf("%w: monthly_by_day rule forbids dayOfWeek and weekOfMonth", ErrInvalidRuleDefinition)
		}

	case domain.PatternMonthlyByWeekday:
		if req.DayOfWeek == nil || req.WeekOfMonth == nil {
			return fmt.Errorf("%w: monthly_by_weekday rule requires dayOfWeek and weekOfMonth", ErrInvalidRuleDefinition)
		}
		if err := validateDayOfWeek(*req.DayOfWeek); err != nil {
			return err
		}
		if *req.WeekOfMonth < domain.MinWeekOfMonth || *req.WeekOfMonth > domain.MaxWeekOfMonth {
			return fmt.Errorf("%w: weekOfMonth must be between %d and %d",
				ErrInvalidRuleDefinition, domain.MinWeekOfMonth, domain.MaxWeekOfMonth)
		}
		if req.DayOfMonth != nil {
			return fmt.Errorf("%w: monthly_by_weekday rule forbids dayOfMonth", ErrInvalidRuleDefinition)
		}

	case domain.PatternCustom:
		if req.Expression == nil || *req.Expression == "" {
			return fmt.Errorf("%w: custom rule requires expression", ErrInvalidRuleDefinition)
		}
		// Выражение проверяется на парсинг уже при создании
		if _, err := rrule.StrToROption(*req.Expression); err != nil {
			return fmt.Errorf("%w: invalid recurrence expression: %v", ErrInvalidRuleDefinition, err)
		}

	default:
		return fmt.Errorf("%w: unknown pattern kind %q", ErrInvalidRuleDefinition, req.Kind)
	}

	return nil
}

func validateDayOfWeek(dow int) error {
	if dow < domain.MinDayOfWeek || dow > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidRuleDefinition, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}
	return nil
}

// validateBlockedDateRequest проверяет блокировку даты при создании
func validateBlockedDateRequest(req *models.CreateBlockedDateRequest) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidBlockedDate)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidBlockedDate)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidBlockedDate)
	}

	if req.AllDay {
		if !req.StartTime.IsZero() || !req.EndTime.IsZero() {
			return fmt.Errorf("%w: all-day block forbids startTime and endTime", ErrInvalidBlockedDate)
		}
		return nil
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: partial block requires startTime and endTime", ErrInvalidBlockedDate)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidBlockedDate, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidBlockedDate, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidBlockedDate)
	}

	return nil
}
