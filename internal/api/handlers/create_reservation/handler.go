package create_reservation

import (
	"errors"
	"net/http"

	"github.com/huwelijksplanner/HP-BookingService/internal/api/handlers"
	"github.com/huwelijksplanner/HP-BookingService/internal/api/middleware"
	reserveSlot "github.com/huwelijksplanner/HP-BookingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidRequestFields = "некорректные поля запроса: проверьте holderId, дату и время"
	msgLocationNotFound     = "локация не найдена"
	msgOfficiantNotFound    = "регистратор не найден"
	msgOfficiantNotEligible = "регистратор недоступен для этой церемонии"
	msgOverrideRequired     = "регистратор не ведет церемонии на выбранном языке, требуется явное подтверждение"
	msgSlotNotAvailable     = "выбранный слот недоступен"
	msgSlotConflict         = "слот только что занят другой резервацией, повторите запрос"
	msgScheduleUnavailable  = "расписание церемоний временно недоступно, попробуйте позже"
	msgMissingUserID        = "отсутствует ID пользователя"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: holder_id=%s, error=%v", req.HolderID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestFields)

		case errors.Is(err, reserveSlot.ErrLocationNotFound):
			h.logger.Warn("POST /reservations - Location not found: location_id=%d", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, reserveSlot.ErrOfficiantNotFound):
			h.logger.Warn("POST /reservations - Officiant not found: holder_id=%s", req.HolderID)
			handlers.RespondNotFound(w, msgOfficiantNotFound)

		case errors.Is(err, reserveSlot.ErrOfficiantNotEligible):
			h.logger.Warn("POST /reservations - Officiant not eligible: holder_id=%s", req.HolderID)
			handlers.RespondError(w, http.StatusConflict, msgOfficiantNotEligible)

		case errors.Is(err, reserveSlot.ErrOverrideRequired):
			h.logger.Warn("POST /reservations - Override required: holder_id=%s, language=%s",
				req.HolderID, req.CeremonyLanguage)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOverrideRequired)

		case errors.Is(err, reserveSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: location_id=%d, date=%s", req.LocationID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, reserveSlot.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: location_id=%d, date=%s", req.LocationID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, reserveSlot.ErrScheduleUnavailable):
			h.logger.Error("POST /reservations - Schedule unavailable: location_id=%d", req.LocationID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgScheduleUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: holder_id=%s, error=%v",
				req.HolderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, holder_id=%s",
		result.ID, req.HolderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
