package compose_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	resourceRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/resource"
	"github.com/huwelijksplanner/HP-BookingService/internal/integrations/ceremonyservice"
	"github.com/huwelijksplanner/HP-BookingService/pkg/ptr"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeResourceRepo struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

type fakeScheduleRepo struct {
	rules   []*domain.RecurringRule
	blocked []*domain.BlockedDate
}

func (f *fakeScheduleRepo) ListRulesByResource(_ context.Context, _ int64) ([]*domain.RecurringRule, error) {
	return f.rules, nil
}

func (f *fakeScheduleRepo) ListBlockedDatesByResource(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockedDate, error) {
	return f.blocked, nil
}

type fakeCeremonyClient struct {
	busy []domain.BusyInterval
	err  error
}

func (f *fakeCeremonyClient) GetBusyIntervalsWithGracefulDegradation(_ context.Context, _ int64, _, _ time.Time) ([]domain.BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.busy, nil
}

const testResourceID = int64(1)

// 2026-05-06 - среда
var (
	testDate = time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc         *UseCase
	resources  *fakeResourceRepo
	schedules  *fakeScheduleRepo
	ceremonies *fakeCeremonyClient
}

func newFixture() *fixture {
	resources := &fakeResourceRepo{resources: map[int64]*domain.Resource{
		testResourceID: {
			ID:       testResourceID,
			Kind:     domain.KindLocation,
			Name:     "Зал Амстел",
			IsActive: true,
			Capacity: 1,
		},
	}}
	schedules := &fakeScheduleRepo{
		rules: []*domain.RecurringRule{{
			ID:         10,
			ResourceID: testResourceID,
			Kind:       domain.PatternWeekly,
			DayOfWeek:  ptr.Ptr(3),
			StartTime:  types.TimeString("09:00"),
			EndTime:    types.TimeString("17:00"),
			ValidFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:   true,
		}},
	}
	ceremonies := &fakeCeremonyClient{}

	uc := NewUseCase(resources, schedules, ceremonies, nopLogger{}, 90, 15)
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &fixture{uc: uc, resources: resources, schedules: schedules, ceremonies: ceremonies}
}

func request(from, to time.Time) *Request {
	return &Request{
		UserID:     "operator-1",
		ResourceID: testResourceID,
		From:       from,
		To:         to,
	}
}

func TestUseCase_Execute_WeeklyWindows(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(testDate, testDate))

	require.NoError(t, err)
	require.Len(t, resp.Windows, 1)
	window := resp.Windows[0]
	assert.Equal(t, int64(10), window.RuleID)
	assert.Equal(t, types.TimeString("09:00"), window.StartTime)
	assert.Equal(t, types.TimeString("17:00"), window.EndTime)
	assert.Equal(t, 480, window.DurationMinutes)
	assert.False(t, resp.Degraded)
}

func TestUseCase_Execute_BusySplitsWindow(t *testing.T) {
	f := newFixture()
	f.ceremonies.busy = []domain.BusyInterval{{
		ResourceID: testResourceID,
		Date:       testDate,
		StartTime:  types.TimeString("12:00"),
		EndTime:    types.TimeString("13:00"),
	}}

	resp, err := f.uc.Execute(context.Background(), request(testDate, testDate))

	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Windows[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Windows[0].EndTime)
	assert.Equal(t, types.TimeString("13:00"), resp.Windows[1].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Windows[1].EndTime)
}

func TestUseCase_Execute_BlockedSpansReported(t *testing.T) {
	f := newFixture()
	f.schedules.blocked = []*domain.BlockedDate{{
		ID:         1,
		ResourceID: testResourceID,
		Date:       testDate,
		AllDay:     false,
		StartTime:  types.TimeString("12:00"),
		EndTime:    types.TimeString("13:00"),
		Reason:     "ремонт зала",
	}}

	resp, err := f.uc.Execute(context.Background(), request(testDate, testDate))

	require.NoError(t, err)
	// Блокировка вырезана из окон и отдельно возвращена с причиной
	require.Len(t, resp.Windows, 2)
	require.Len(t, resp.Blocked, 1)
	assert.Equal(t, "ремонт зала", resp.Blocked[0].Reason)
	assert.Equal(t, types.TimeString("12:00"), resp.Blocked[0].StartTime)
	assert.False(t, resp.Blocked[0].AllDay)
}

func TestUseCase_Execute_DegradedCeremonyService(t *testing.T) {
	f := newFixture()
	f.ceremonies.err = ceremonyservice.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), request(testDate, testDate))

	// Недоступность CeremonyService не роняет чтение: расчет идет без
	// занятости, клиент видит флаг Degraded
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Windows, 1)
}

func TestUseCase_Execute_InactiveResource(t *testing.T) {
	f := newFixture()
	f.resources.resources[testResourceID].IsActive = false

	resp, err := f.uc.Execute(context.Background(), request(testDate, testDate))

	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

func TestUseCase_Execute_DefaultPeriod(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(time.Time{}, time.Time{}))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), resp.From)
	assert.Equal(t, time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC), resp.To)
	// 13 сред между 2026-05-01 и 2026-07-30 включительно
	assert.Len(t, resp.Windows, 13)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		req         *Request
		expectedErr error
	}{
		{
			name:        "неположительный resourceID",
			req:         &Request{ResourceID: 0},
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "to раньше from",
			req:         request(testDate, testDate.AddDate(0, 0, -1)),
			expectedErr: ErrInvalidPeriod,
		},
		{
			name:        "период за горизонтом планирования",
			req:         request(testDate, testNow.AddDate(0, 0, 91)),
			expectedErr: ErrPeriodTooLong,
		},
		{
			name:        "несуществующий ресурс",
			req:         &Request{ResourceID: 999, From: testDate, To: testDate},
			expectedErr: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.uc.Execute(context.Background(), tc.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, resp)
		})
	}
}
