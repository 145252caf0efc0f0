package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	resourceRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/resource"
	scheduleRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/schedule"
	"github.com/huwelijksplanner/HP-BookingService/internal/service/schedule/models"
	"github.com/huwelijksplanner/HP-BookingService/pkg/ptr"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleRepo struct {
	rules        map[int64]*domain.RecurringRule
	blockedDates map[int64]*domain.BlockedDate
	nextID       int64
	createErr    error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		rules:        make(map[int64]*domain.RecurringRule),
		blockedDates: make(map[int64]*domain.BlockedDate),
		nextID:       1,
	}
}

func (f *fakeScheduleRepo) CreateRule(_ context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *rule
	created.ID = f.nextID
	f.nextID++
	f.rules[created.ID] = &created
	return &created, nil
}

func (f *fakeScheduleRepo) GetRuleByID(_ context.Context, id int64) (*domain.RecurringRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return rule, nil
}

func (f *fakeScheduleRepo) ListRulesByResource(_ context.Context, resourceID int64) ([]*domain.RecurringRule, error) {
	var result []*domain.RecurringRule
	for _, rule := range f.rules {
		if rule.ResourceID == resourceID {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) DeleteRule(_ context.Context, id int64) error {
	if _, ok := f.rules[id]; !ok {
		return scheduleRepo.ErrRuleNotFound
	}
	delete(f.rules, id)
	return nil
}

func (f *fakeScheduleRepo) CreateBlockedDate(_ context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *blocked
	created.ID = f.nextID
	f.nextID++
	f.blockedDates[created.ID] = &created
	return &created, nil
}

func (f *fakeScheduleRepo) ListBlockedDatesByResource(_ context.Context, resourceID int64, _, _ time.Time) ([]*domain.BlockedDate, error) {
	var result []*domain.BlockedDate
	for _, blocked := range f.blockedDates {
		if blocked.ResourceID == resourceID {
			result = append(result, blocked)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) DeleteBlockedDate(_ context.Context, id int64) error {
	if _, ok := f.blockedDates[id]; !ok {
		return scheduleRepo.ErrBlockedDateNotFound
	}
	delete(f.blockedDates, id)
	return nil
}

type fakeResourceRepo struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	resource, ok := f.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return resource, nil
}

func newTestService() (*Service, *fakeScheduleRepo) {
	schedules := newFakeScheduleRepo()
	resources := &fakeResourceRepo{resources: map[int64]*domain.Resource{
		1: {ID: 1, Kind: domain.KindLocation, Name: "Стадхаус", IsActive: true},
	}}
	return NewService(schedules, resources, nopLogger{}), schedules
}

func validRuleRequest() *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		ResourceID: 1,
		Kind:       string(domain.PatternWeekly),
		DayOfWeek:  ptr.Ptr(3),
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("17:00"),
		ValidFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_CreateRule(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(req *models.CreateRuleRequest)
		expectedErr error
	}{
		{
			name:   "успешное создание weekly правила",
			mutate: func(req *models.CreateRuleRequest) {},
		},
		{
			name: "успешное создание workdays правила",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternWorkdays)
				req.DayOfWeek = nil
			},
		},
		{
			name: "успешное создание monthly_by_weekday правила",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternMonthlyByWeekday)
				req.DayOfWeek = ptr.Ptr(4)
				req.WeekOfMonth = ptr.Ptr(2)
			},
		},
		{
			name: "успешное создание custom правила",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternCustom)
				req.DayOfWeek = nil
				req.Expression = ptr.Ptr("FREQ=WEEKLY;BYDAY=TU,TH")
			},
		},
		{
			name: "неположительный resourceID",
			mutate: func(req *models.CreateRuleRequest) {
				req.ResourceID = 0
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "отсутствует startTime",
			mutate: func(req *models.CreateRuleRequest) {
				req.StartTime = ""
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "startTime не раньше endTime",
			mutate: func(req *models.CreateRuleRequest) {
				req.StartTime = types.TimeString("17:00")
				req.EndTime = types.TimeString("09:00")
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "некорректный формат времени",
			mutate: func(req *models.CreateRuleRequest) {
				req.StartTime = types.TimeString("9:00")
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "validUntil раньше validFrom",
			mutate: func(req *models.CreateRuleRequest) {
				req.ValidUntil = ptr.Ptr(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "weekly без dayOfWeek",
			mutate: func(req *models.CreateRuleRequest) {
				req.DayOfWeek = nil
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "weekly с dayOfWeek вне диапазона",
			mutate: func(req *models.CreateRuleRequest) {
				req.DayOfWeek = ptr.Ptr(7)
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "weekly с запрещённым dayOfMonth",
			mutate: func(req *models.CreateRuleRequest) {
				req.DayOfMonth = ptr.Ptr(15)
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "biweekly без dayOfWeek",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternBiweekly)
				req.DayOfWeek = nil
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "workdays с запрещённым dayOfWeek",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternWorkdays)
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "monthly_by_day без dayOfMonth",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternMonthlyByDay)
				req.DayOfWeek = nil
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "monthly_by_day с dayOfMonth вне диапазона",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternMonthlyByDay)
				req.DayOfWeek = nil
				req.DayOfMonth = ptr.Ptr(32)
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "monthly_by_weekday без weekOfMonth",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternMonthlyByWeekday)
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "monthly_by_weekday с weekOfMonth вне диапазона",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternMonthlyByWeekday)
				req.WeekOfMonth = ptr.Ptr(6)
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "custom без expression",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternCustom)
				req.DayOfWeek = nil
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "custom с нечитаемым expression",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = string(domain.PatternCustom)
				req.DayOfWeek = nil
				req.Expression = ptr.Ptr("FREQ=NONSENSE")
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "неизвестный вид паттерна",
			mutate: func(req *models.CreateRuleRequest) {
				req.Kind = "yearly"
			},
			expectedErr: ErrInvalidRuleDefinition,
		},
		{
			name: "несуществующий ресурс",
			mutate: func(req *models.CreateRuleRequest) {
				req.ResourceID = 999
			},
			expectedErr: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestService()
			req := validRuleRequest()
			tc.mutate(req)

			resp, err := service.CreateRule(context.Background(), req)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotZero(t, resp.ID)
			assert.Equal(t, req.ResourceID, resp.ResourceID)
			assert.True(t, resp.IsActive)
		})
	}
}

func TestService_CreateRule_RepositoryError(t *testing.T) {
	service, schedules := newTestService()
	schedules.createErr = assert.AnError

	resp, err := service.CreateRule(context.Background(), validRuleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}

func TestService_ListRules(t *testing.T) {
	service, _ := newTestService()

	for i := 0; i < 2; i++ {
		_, err := service.CreateRule(context.Background(), validRuleRequest())
		require.NoError(t, err)
	}

	rules, err := service.ListRules(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	empty, err := service.ListRules(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestService_DeleteRule(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateRule(context.Background(), validRuleRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteRule(context.Background(), created.ID))

	err = service.DeleteRule(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func validBlockedDateRequest() *models.CreateBlockedDateRequest {
	return &models.CreateBlockedDateRequest{
		ResourceID: 1,
		Date:       time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
		AllDay:     true,
		Reason:     "ремонт зала",
	}
}

func TestService_CreateBlockedDate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(req *models.CreateBlockedDateRequest)
		expectedErr error
	}{
		{
			name:   "успешная блокировка на весь день",
			mutate: func(req *models.CreateBlockedDateRequest) {},
		},
		{
			name: "успешная частичная блокировка",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.AllDay = false
				req.StartTime = types.TimeString("12:00")
				req.EndTime = types.TimeString("14:00")
			},
		},
		{
			name: "неположительный resourceID",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.ResourceID = -1
			},
			expectedErr: ErrInvalidBlockedDate,
		},
		{
			name: "отсутствует дата",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.Date = time.Time{}
			},
			expectedErr: ErrInvalidBlockedDate,
		},
		{
			name: "блокировка на весь день с указанным временем",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.StartTime = types.TimeString("12:00")
			},
			expectedErr: ErrInvalidBlockedDate,
		},
		{
			name: "частичная блокировка без времени",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.AllDay = false
			},
			expectedErr: ErrInvalidBlockedDate,
		},
		{
			name: "частичная блокировка с перепутанным временем",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.AllDay = false
				req.StartTime = types.TimeString("14:00")
				req.EndTime = types.TimeString("12:00")
			},
			expectedErr: ErrInvalidBlockedDate,
		},
		{
			name: "несуществующий ресурс",
			mutate: func(req *models.CreateBlockedDateRequest) {
				req.ResourceID = 999
			},
			expectedErr: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestService()
			req := validBlockedDateRequest()
			tc.mutate(req)

			resp, err := service.CreateBlockedDate(context.Background(), req)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotZero(t, resp.ID)
		})
	}
}

func TestService_DeleteBlockedDate(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateBlockedDate(context.Background(), validBlockedDateRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteBlockedDate(context.Background(), created.ID))

	err = service.DeleteBlockedDate(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrBlockedDateNotFound)
}
