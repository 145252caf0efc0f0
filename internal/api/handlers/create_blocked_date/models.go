package create_blocked_date

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// CreateBlockedDateRequest HTTP request model
type CreateBlockedDateRequest struct {
	Date      string `json:"date"` // "2026-05-20"
	AllDay    bool   `json:"allDay"`
	StartTime string `json:"startTime,omitempty"` // "12:00", только для частичной блокировки
	EndTime   string `json:"endTime,omitempty"`   // "13:00"
	Reason    string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockedDateRequest) ToServiceRequest(resourceID int64) (*models.CreateBlockedDateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &models.CreateBlockedDateRequest{
		ResourceID: resourceID,
		Date:       date,
		AllDay:     r.AllDay,
		Reason:     r.Reason,
	}

	// Время задается только для частичной блокировки
	if !r.AllDay {
		startTime, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = startTime
		req.EndTime = endTime
	}

	return req, nil
}
