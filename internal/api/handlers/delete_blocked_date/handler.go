package delete_blocked_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/huwelijksplanner/HP-BookingService/internal/api/handlers"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule"
)

const (
	msgInvalidBlockedDateID = "некорректный ID блокировки"
	msgBlockedDateNotFound  = "блокировка не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/blocked-dates/{blockedDateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockedDateID, err := strconv.ParseInt(vars["blockedDateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked-dates/{id} - Invalid blocked date ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedDateID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), blockedDateID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /blocked-dates/{id} - Blocked date not found: blocked_date_id=%d", blockedDateID)
			handlers.RespondNotFound(w, msgBlockedDateNotFound)

		default:
			h.logger.Error("DELETE /blocked-dates/{id} - Failed: blocked_date_id=%d, error=%v", blockedDateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-dates/{id} - Blocked date deleted: blocked_date_id=%d", blockedDateID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
