package create_rule

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	Kind        string  `json:"kind"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	DayOfMonth  *int    `json:"dayOfMonth,omitempty"`
	WeekOfMonth *int    `json:"weekOfMonth,omitempty"`
	Expression  *string `json:"expression,omitempty"`
	StartTime   string  `json:"startTime"` // "09:00"
	EndTime     string  `json:"endTime"`   // "17:00"
	ValidFrom   string  `json:"validFrom"` // "2026-01-01"
	ValidUntil  *string `json:"validUntil,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRuleRequest) ToServiceRequest(resourceID int64) (*models.CreateRuleRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	validFrom, err := time.Parse(domain.DateFormat, r.ValidFrom)
	if err != nil {
		return nil, err
	}

	var validUntil *time.Time
	if r.ValidUntil != nil {
		until, err := time.Parse(domain.DateFormat, *r.ValidUntil)
		if err != nil {
			return nil, err
		}
		validUntil = &until
	}

	return &models.CreateRuleRequest{
		ResourceID:  resourceID,
		Kind:        r.Kind,
		DayOfWeek:   r.DayOfWeek,
		DayOfMonth:  r.DayOfMonth,
		WeekOfMonth: r.WeekOfMonth,
		Expression:  r.Expression,
		StartTime:   startTime,
		EndTime:     endTime,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		Description: r.Description,
	}, nil
}
