package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/huwelijksplanner/HP-BookingService/internal/api/handlers"
	"github.com/huwelijksplanner/HP-BookingService/internal/api/middleware"
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	composeAvailability "github.com/huwelijksplanner/HP-BookingService/internal/usecase/compose_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound  = "ресурс не найден"
	msgInvalidPeriod     = "некорректный период запроса"
	msgPeriodTooLong     = "период превышает горизонт планирования"
	msgMissingUserID     = "отсутствует ID пользователя"
)

type Handler struct {
	useCase ComposeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ComposeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /resources/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Период опционален: пустые границы заменяются дефолтами в use case
	from, err := parseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := parseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &composeAvailability.Request{
		UserID:     userID,
		ResourceID: resourceID,
		From:       from,
		To:         to,
	})
	if err != nil {
		switch {
		case errors.Is(err, composeAvailability.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/availability - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, composeAvailability.ErrInvalidInput),
			errors.Is(err, composeAvailability.ErrInvalidPeriod):
			h.logger.Warn("GET /resources/{id}/availability - Invalid request: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, composeAvailability.ErrPeriodTooLong):
			h.logger.Warn("GET /resources/{id}/availability - Period too long: resource_id=%d", resourceID)
			handlers.RespondBadRequest(w, msgPeriodTooLong)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability - %d windows returned: resource_id=%d",
		len(result.Windows), resourceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateFormat, value)
}
