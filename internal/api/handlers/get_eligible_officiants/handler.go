package get_eligible_officiants

import (
	"errors"
	"net/http"
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/api/handlers"
	"github.com/huwelijksplanner/HP-BookingService/internal/api/middleware"
	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	filterOfficiants "github.com/huwelijksplanner/HP-BookingService/internal/usecase/filter_officiants"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInterval = "некорректный интервал церемонии"
	msgMissingUserID   = "отсутствует ID пользователя"
)

type Handler struct {
	useCase FilterOfficiantsUseCase
	logger  Logger
}

func NewHandler(useCase FilterOfficiantsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/officiants/eligible?date=YYYY-MM-DD&startTime=HH:MM&endTime=HH:MM&language=nl
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /officiants/eligible - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /officiants/eligible - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		h.logger.Warn("GET /officiants/eligible - Invalid startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	endTime, err := types.NewTimeStringFromString(query.Get("endTime"))
	if err != nil {
		h.logger.Warn("GET /officiants/eligible - Invalid endTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &filterOfficiants.Request{
		UserID:           userID,
		Date:             date,
		StartTime:        startTime,
		EndTime:          endTime,
		CeremonyLanguage: query.Get("language"),
	})
	if err != nil {
		switch {
		case errors.Is(err, filterOfficiants.ErrInvalidInput):
			h.logger.Warn("GET /officiants/eligible - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /officiants/eligible - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /officiants/eligible - %d officiants returned for %s %s-%s",
		len(result.Officiants), date.Format(domain.DateFormat), startTime, endTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
