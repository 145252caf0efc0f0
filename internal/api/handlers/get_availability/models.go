package get_availability

import (
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	composeAvailability "github.com/huwelijksplanner/HP-BookingService/internal/usecase/compose_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID int64            `json:"resourceId"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Windows    []WindowResponse `json:"windows"`

	// Заблокированные промежутки с причинами, для отображения оператору
	Blocked []BlockedSpanResponse `json:"blocked,omitempty"`

	Degraded bool `json:"degraded,omitempty"`
}

// BlockedSpanResponse модель заблокированного промежутка
type BlockedSpanResponse struct {
	Date      string `json:"date"`
	AllDay    bool   `json:"allDay,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// WindowResponse модель окна доступности
type WindowResponse struct {
	Date            string `json:"date"`      // "2026-05-20"
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "12:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *composeAvailability.Response) *AvailabilityResponse {
	windows := make([]WindowResponse, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = WindowResponse{
			Date:            w.Date.Format(domain.DateFormat),
			StartTime:       w.StartTime.String(),
			EndTime:         w.EndTime.String(),
			DurationMinutes: w.DurationMinutes,
		}
	}

	blocked := make([]BlockedSpanResponse, len(resp.Blocked))
	for i, b := range resp.Blocked {
		blocked[i] = BlockedSpanResponse{
			Date:      b.Date.Format(domain.DateFormat),
			AllDay:    b.AllDay,
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
			Reason:    b.Reason,
		}
	}

	return &AvailabilityResponse{
		ResourceID: resp.ResourceID,
		From:       resp.From.Format(domain.DateFormat),
		To:         resp.To.Format(domain.DateFormat),
		Windows:    windows,
		Blocked:    blocked,
		Degraded:   resp.Degraded,
	}
}
