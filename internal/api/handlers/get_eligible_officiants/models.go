package get_eligible_officiants

import (
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	filterOfficiants "github.com/huwelijksplanner/HP-BookingService/internal/usecase/filter_officiants"
)

// OfficiantsResponse HTTP response model
type OfficiantsResponse struct {
	Date       string              `json:"date"`
	Officiants []OfficiantResponse `json:"officiants"`
	Degraded   bool                `json:"degraded,omitempty"`
}

// OfficiantResponse модель подходящего регистратора
type OfficiantResponse struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Languages        []string `json:"languages"`
	LanguageMismatch bool     `json:"languageMismatch,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *filterOfficiants.Response) *OfficiantsResponse {
	officiants := make([]OfficiantResponse, len(resp.Officiants))
	for i, o := range resp.Officiants {
		officiants[i] = OfficiantResponse{
			ID:               o.ID,
			Name:             o.Name,
			Languages:        o.Languages,
			LanguageMismatch: o.LanguageMismatch,
		}
	}

	return &OfficiantsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		Officiants: officiants,
		Degraded:   resp.Degraded,
	}
}
