package get_holder_reservations

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/huwelijksplanner/HP-BookingService/internal/api/handlers"
)

const msgInvalidHolderID = "некорректный ID досье"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/holders/{holderId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	holderID, err := uuid.Parse(vars["holderId"])
	if err != nil {
		h.logger.Warn("GET /holders/{id}/reservations - Invalid holder ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolderID)
		return
	}

	result, err := h.service.GetByHolder(r.Context(), holderID)
	if err != nil {
		h.logger.Error("GET /holders/{id}/reservations - Failed: holder_id=%s, error=%v", holderID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /holders/{id}/reservations - %d reservations returned: holder_id=%s",
		len(result.Reservations), holderID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
