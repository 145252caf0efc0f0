package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	reserveSlot "github.com/huwelijksplanner/HP-BookingService/internal/usecase/reserve_slot"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	HolderID         string `json:"holderId"` // UUID досье
	LocationID       int64  `json:"locationId"`
	OfficiantID      *int64 `json:"officiantId,omitempty"`
	Date             string `json:"date"`      // "2026-05-20"
	StartTime        string `json:"startTime"` // "10:00"
	EndTime          string `json:"endTime"`   // "10:45"
	CeremonyLanguage string `json:"ceremonyLanguage,omitempty"`
	Override         bool   `json:"override,omitempty"`
	OverrideReason   string `json:"overrideReason,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               int64  `json:"id"`
	LocationID       int64  `json:"locationId"`
	OfficiantID      *int64 `json:"officiantId,omitempty"`
	HolderID         string `json:"holderId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Status           string `json:"status"`
	LanguageOverride bool   `json:"languageOverride,omitempty"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) (*reserveSlot.Request, error) {
	holderID, err := uuid.Parse(r.HolderID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		UserID:           userID,
		HolderID:         holderID,
		LocationID:       r.LocationID,
		OfficiantID:      r.OfficiantID,
		Date:             date,
		StartTime:        startTime,
		EndTime:          endTime,
		CeremonyLanguage: r.CeremonyLanguage,
		Override:         r.Override,
		OverrideReason:   r.OverrideReason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		LocationID:       resp.LocationID,
		OfficiantID:      resp.OfficiantID,
		HolderID:         resp.HolderID.String(),
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		Status:           resp.Status,
		LanguageOverride: resp.LanguageOverride,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
