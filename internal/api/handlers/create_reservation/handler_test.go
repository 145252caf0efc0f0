package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwelijksplanner/HP-BookingService/internal/api/middleware"
	reserveSlot "github.com/huwelijksplanner/HP-BookingService/internal/usecase/reserve_slot"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp *reserveSlot.Response
	err  error

	gotReq *reserveSlot.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *reserveSlot.Request) (*reserveSlot.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

var testHolderID = uuid.MustParse("7b0f8f7e-3f64-4f1a-9c26-0f3db15a2f11")

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"holderId":   testHolderID.String(),
		"locationId": 1,
		"date":       "2026-05-20",
		"startTime":  "10:00",
		"endTime":    "10:45",
	}
}

func doRequest(t *testing.T, useCase ReserveSlotUseCase, body interface{}, withUser bool) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(payload))
	if withUser {
		req.Header.Set(middleware.HeaderUserID, "operator-1")
	}

	rec := httptest.NewRecorder()
	handler := middleware.Auth(http.HandlerFunc(NewHandler(useCase, nopLogger{}).Handle))
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle_Success(t *testing.T) {
	useCase := &stubUseCase{resp: &reserveSlot.Response{
		ID:         42,
		LocationID: 1,
		HolderID:   testHolderID,
		Date:       time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
		EndTime:    types.TimeString("10:45"),
		Status:     "reserved",
	}}

	rec := doRequest(t, useCase, validBody(), true)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, testHolderID.String(), resp.HolderID)
	assert.Equal(t, "2026-05-20", resp.Date)
	assert.Equal(t, "reserved", resp.Status)

	require.NotNil(t, useCase.gotReq)
	assert.Equal(t, "operator-1", useCase.gotReq.UserID)
	assert.Equal(t, testHolderID, useCase.gotReq.HolderID)
}

func TestHandler_Handle_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		useCaseErr     error
		expectedStatus int
	}{
		{
			name:           "некорректные входные данные",
			useCaseErr:     reserveSlot.ErrInvalidInput,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "локация не найдена",
			useCaseErr:     reserveSlot.ErrLocationNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "регистратор не найден",
			useCaseErr:     reserveSlot.ErrOfficiantNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "регистратор недоступен",
			useCaseErr:     reserveSlot.ErrOfficiantNotEligible,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "требуется подтверждение языка",
			useCaseErr:     reserveSlot.ErrOverrideRequired,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "слот недоступен",
			useCaseErr:     reserveSlot.ErrSlotNotAvailable,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "гонка за слот",
			useCaseErr:     reserveSlot.ErrSlotConflict,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "расписание церемоний недоступно",
			useCaseErr:     reserveSlot.ErrScheduleUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "внутренняя ошибка",
			useCaseErr:     reserveSlot.ErrInternal,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tc.useCaseErr}, validBody(), true)

			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestHandler_Handle_BadRequests(t *testing.T) {
	t.Run("отсутствует заголовок пользователя", func(t *testing.T) {
		rec := doRequest(t, &stubUseCase{}, validBody(), false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("неизвестное поле в теле", func(t *testing.T) {
		body := validBody()
		body["unknown"] = true
		rec := doRequest(t, &stubUseCase{}, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("некорректный holderId", func(t *testing.T) {
		body := validBody()
		body["holderId"] = "not-a-uuid"
		rec := doRequest(t, &stubUseCase{}, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		body := validBody()
		body["date"] = "20-05-2026"
		rec := doRequest(t, &stubUseCase{}, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("некорректное время", func(t *testing.T) {
		body := validBody()
		body["startTime"] = "10:00:00"
		rec := doRequest(t, &stubUseCase{}, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
