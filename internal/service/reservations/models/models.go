package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену резервации
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// Response модели

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID               int64     `json:"id"`
	LocationID       int64     `json:"locationId"`
	OfficiantID      *int64    `json:"officiantId,omitempty"`
	HolderID         uuid.UUID `json:"holderId"`
	Date             string    `json:"date"`      // "2026-05-20"
	StartTime        string    `json:"startTime"` // "10:00"
	EndTime          string    `json:"endTime"`   // "10:45"
	Status           string    `json:"status"`
	LanguageOverride bool      `json:"languageOverride,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		LocationID:         r.LocationID,
		OfficiantID:        r.OfficiantID,
		HolderID:           r.HolderID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Status:             string(r.Status),
		LanguageOverride:   r.LanguageOverride,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		result.Reservations = append(result.Reservations, *FromDomainReservation(r))
	}

	return result
}
