package models

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// Request модели

// CreateRuleRequest запрос на создание правила повторения
type CreateRuleRequest struct {
	ResourceID  int64
	Kind        string
	DayOfWeek   *int
	DayOfMonth  *int
	WeekOfMonth *int
	Expression  *string
	StartTime   types.TimeString
	EndTime     types.TimeString
	ValidFrom   time.Time
	ValidUntil  *time.Time
	Description string
}

// CreateBlockedDateRequest запрос на создание блокировки даты
type CreateBlockedDateRequest struct {
	ResourceID int64
	Date       time.Time
	AllDay     bool
	StartTime  types.TimeString
	EndTime    types.TimeString
	Reason     string
}

// Response модели

// RuleResponse ответ с данными правила повторения
type RuleResponse struct {
	ID          int64   `json:"id"`
	ResourceID  int64   `json:"resourceId"`
	Kind        string  `json:"kind"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	DayOfMonth  *int    `json:"dayOfMonth,omitempty"`
	WeekOfMonth *int    `json:"weekOfMonth,omitempty"`
	Expression  *string `json:"expression,omitempty"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	ValidFrom   string  `json:"validFrom"`
	ValidUntil  *string `json:"validUntil,omitempty"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockedDateResponse ответ с данными блокировки даты
type BlockedDateResponse struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resourceId"`
	Date       string `json:"date"`
	AllDay     bool   `json:"allDay"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	Reason     string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель правила в DTO
func FromDomainRule(r *domain.RecurringRule) *RuleResponse {
	if r == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:          r.ID,
		ResourceID:  r.ResourceID,
		Kind:        string(r.Kind),
		DayOfWeek:   r.DayOfWeek,
		DayOfMonth:  r.DayOfMonth,
		WeekOfMonth: r.WeekOfMonth,
		Expression:  r.Expression,
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		ValidFrom:   r.ValidFrom.Format(domain.DateFormat),
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.ValidUntil != nil {
		until := r.ValidUntil.Format(domain.DateFormat)
		resp.ValidUntil = &until
	}

	return resp
}

// FromDomainBlockedDate конвертирует domain модель блокировки в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		Date:       b.Date.Format(domain.DateFormat),
		AllDay:     b.AllDay,
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
