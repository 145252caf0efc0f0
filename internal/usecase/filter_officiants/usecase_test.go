package filter_officiants

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/internal/integrations/ceremonyservice"
	"github.com/huwelijksplanner/HP-BookingService/pkg/ptr"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeResourceRepo struct {
	officiants []*domain.Resource
}

func (f *fakeResourceRepo) ListByKind(_ context.Context, kind domain.ResourceKind) ([]*domain.Resource, error) {
	if kind != domain.KindOfficiant {
		return nil, nil
	}
	return f.officiants, nil
}

type fakeScheduleRepo struct {
	rules   map[int64][]*domain.RecurringRule
	blocked map[int64][]*domain.BlockedDate
}

func (f *fakeScheduleRepo) ListRulesByResource(_ context.Context, resourceID int64) ([]*domain.RecurringRule, error) {
	return f.rules[resourceID], nil
}

func (f *fakeScheduleRepo) ListBlockedDatesByResource(_ context.Context, resourceID int64, _, _ time.Time) ([]*domain.BlockedDate, error) {
	return f.blocked[resourceID], nil
}

type fakeReservationRepo struct {
	reservations map[int64][]*domain.Reservation
}

func (f *fakeReservationRepo) GetActiveByOfficiantAndRange(_ context.Context, officiantID int64, _, _ time.Time) ([]*domain.Reservation, error) {
	return f.reservations[officiantID], nil
}

type fakeCeremonyClient struct {
	busy map[int64][]domain.BusyInterval
	errs map[int64]error
}

func (f *fakeCeremonyClient) GetBusyIntervalsWithGracefulDegradation(_ context.Context, resourceID int64, _, _ time.Time) ([]domain.BusyInterval, error) {
	if err := f.errs[resourceID]; err != nil {
		return nil, err
	}
	return f.busy[resourceID], nil
}

// 2026-05-06 - среда
var testDate = time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)

func officiant(id int64, languages ...string) *domain.Resource {
	return &domain.Resource{
		ID:        id,
		Kind:      domain.KindOfficiant,
		Name:      "Регистратор",
		IsActive:  true,
		Languages: languages,
	}
}

func wednesdayRule(resourceID int64) *domain.RecurringRule {
	return &domain.RecurringRule{
		ID:         resourceID * 10,
		ResourceID: resourceID,
		Kind:       domain.PatternWeekly,
		DayOfWeek:  ptr.Ptr(3),
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("17:00"),
		ValidFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	}
}

type fixture struct {
	uc           *UseCase
	resources    *fakeResourceRepo
	schedules    *fakeScheduleRepo
	reservations *fakeReservationRepo
	ceremonies   *fakeCeremonyClient
}

func newFixture(officiants ...*domain.Resource) *fixture {
	resources := &fakeResourceRepo{officiants: officiants}
	schedules := &fakeScheduleRepo{
		rules:   make(map[int64][]*domain.RecurringRule),
		blocked: make(map[int64][]*domain.BlockedDate),
	}
	for _, o := range officiants {
		schedules.rules[o.ID] = []*domain.RecurringRule{wednesdayRule(o.ID)}
	}
	reservations := &fakeReservationRepo{reservations: make(map[int64][]*domain.Reservation)}
	ceremonies := &fakeCeremonyClient{
		busy: make(map[int64][]domain.BusyInterval),
		errs: make(map[int64]error),
	}

	uc := NewUseCase(resources, schedules, reservations, ceremonies, nopLogger{}, 0)
	return &fixture{uc: uc, resources: resources, schedules: schedules, reservations: reservations, ceremonies: ceremonies}
}

func request(language string) *Request {
	return &Request{
		UserID:           "operator-1",
		Date:             testDate,
		StartTime:        types.TimeString("10:00"),
		EndTime:          types.TimeString("10:45"),
		CeremonyLanguage: language,
	}
}

func TestUseCase_Execute_HardFilters(t *testing.T) {
	inactive := officiant(2, "nl")
	inactive.IsActive = false

	expired := officiant(3, "nl")
	until := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	expired.CertifiedUntil = &until

	f := newFixture(officiant(1, "nl"), inactive, expired)

	resp, err := f.uc.Execute(context.Background(), request(""))

	require.NoError(t, err)
	require.Len(t, resp.Officiants, 1)
	assert.Equal(t, int64(1), resp.Officiants[0].ID)
}

func TestUseCase_Execute_LanguageSoftFilter(t *testing.T) {
	f := newFixture(officiant(1, "nl", "en"), officiant(2, "fr"))

	resp, err := f.uc.Execute(context.Background(), request("nl"))

	require.NoError(t, err)
	require.Len(t, resp.Officiants, 2)

	byID := make(map[int64]Officiant, len(resp.Officiants))
	for _, o := range resp.Officiants {
		byID[o.ID] = o
	}
	// Несоответствие языка не выбрасывает регистратора из выдачи
	assert.False(t, byID[1].LanguageMismatch)
	assert.True(t, byID[2].LanguageMismatch)
}

func TestUseCase_Execute_BusyOfficiantExcluded(t *testing.T) {
	f := newFixture(officiant(1, "nl"), officiant(2, "nl"))
	f.ceremonies.busy[1] = []domain.BusyInterval{{
		ResourceID: 1,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
		EndTime:    types.TimeString("11:00"),
	}}

	resp, err := f.uc.Execute(context.Background(), request(""))

	require.NoError(t, err)
	require.Len(t, resp.Officiants, 1)
	assert.Equal(t, int64(2), resp.Officiants[0].ID)
}

func TestUseCase_Execute_ReservedOfficiantExcluded(t *testing.T) {
	f := newFixture(officiant(1, "nl"))
	f.reservations.reservations[1] = []*domain.Reservation{{
		ID:          100,
		LocationID:  5,
		OfficiantID: ptr.Ptr(int64(1)),
		Date:        testDate,
		StartTime:   types.TimeString("10:30"),
		EndTime:     types.TimeString("11:15"),
		Status:      domain.StatusReserved,
	}}

	resp, err := f.uc.Execute(context.Background(), request(""))

	require.NoError(t, err)
	assert.Empty(t, resp.Officiants)
}

func TestUseCase_Execute_NoScheduleExcluded(t *testing.T) {
	f := newFixture(officiant(1, "nl"))
	f.schedules.rules[1] = nil

	resp, err := f.uc.Execute(context.Background(), request(""))

	require.NoError(t, err)
	assert.Empty(t, resp.Officiants)
}

func TestUseCase_Execute_DegradedCeremonyService(t *testing.T) {
	f := newFixture(officiant(1, "nl"))
	f.ceremonies.errs[1] = ceremonyservice.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), request(""))

	// Деградация не прячет регистратора, но помечает выдачу
	require.NoError(t, err)
	require.Len(t, resp.Officiants, 1)
	assert.True(t, resp.Degraded)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(req *Request)
	}{
		{
			name:   "отсутствует дата",
			mutate: func(req *Request) { req.Date = time.Time{} },
		},
		{
			name:   "некорректное время начала",
			mutate: func(req *Request) { req.StartTime = "99:99" },
		},
		{
			name: "начало не раньше конца",
			mutate: func(req *Request) {
				req.StartTime = "11:00"
				req.EndTime = "10:00"
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(officiant(1, "nl"))
			req := request("")
			tc.mutate(req)

			resp, err := f.uc.Execute(context.Background(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, resp)
		})
	}
}
