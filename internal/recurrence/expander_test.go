package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseRule(kind domain.PatternKind) *domain.RecurringRule {
	return &domain.RecurringRule{
		ID:         1,
		ResourceID: 10,
		Kind:       kind,
		StartTime:  "09:00",
		EndTime:    "17:00",
		ValidFrom:  date(2026, time.January, 1),
		IsActive:   true,
	}
}

func occurrenceDates(occurrences []Occurrence) []string {
	dates := make([]string, len(occurrences))
	for i, occ := range occurrences {
		dates[i] = occ.Date.Format(domain.DateFormat)
	}
	return dates
}

func TestExpand_Weekly(t *testing.T) {
	rule := baseRule(domain.PatternWeekly)
	rule.DayOfWeek = ptr.Ptr(3) // среда

	// 2026-05-04 понедельник, 2026-05-17 воскресенье
	occurrences, err := Expand(rule, date(2026, time.May, 4), date(2026, time.May, 17))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-05-06", "2026-05-13"}, occurrenceDates(occurrences))
	for _, occ := range occurrences {
		assert.Equal(t, int64(1), occ.RuleID)
		assert.Equal(t, "09:00", occ.StartTime.String())
		assert.Equal(t, "17:00", occ.EndTime.String())
	}
}

func TestExpand_Workdays(t *testing.T) {
	rule := baseRule(domain.PatternWorkdays)

	// Неделя с понедельника 2026-05-04 по воскресенье 2026-05-10
	occurrences, err := Expand(rule, date(2026, time.May, 4), date(2026, time.May, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-05-04", "2026-05-05", "2026-05-06", "2026-05-07", "2026-05-08"},
		occurrenceDates(occurrences))
}

func TestExpand_Biweekly(t *testing.T) {
	rule := baseRule(domain.PatternBiweekly)
	rule.DayOfWeek = ptr.Ptr(1) // понедельник
	// 2026-01-01 четверг; его ISO неделя начинается 2025-12-29 и является активной
	rule.ValidFrom = date(2026, time.January, 1)

	occurrences, err := Expand(rule, date(2026, time.January, 1), date(2026, time.February, 1))
	require.NoError(t, err)

	// Активные недели: 12-29 (понедельник вне горизонта), 01-12, 01-26
	assert.Equal(t, []string{"2026-01-12", "2026-01-26"}, occurrenceDates(occurrences))
}

func TestExpand_MonthlyByDay(t *testing.T) {
	rule := baseRule(domain.PatternMonthlyByDay)
	rule.DayOfMonth = ptr.Ptr(31)

	// Февраль и апрель без 31-го: правило просто не срабатывает
	occurrences, err := Expand(rule, date(2026, time.January, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-01-31", "2026-03-31"}, occurrenceDates(occurrences))
}

func TestExpand_MonthlyByWeekday(t *testing.T) {
	rule := baseRule(domain.PatternMonthlyByWeekday)
	rule.DayOfWeek = ptr.Ptr(5)  // пятница
	rule.WeekOfMonth = ptr.Ptr(2)

	occurrences, err := Expand(rule, date(2026, time.May, 1), date(2026, time.June, 30))
	require.NoError(t, err)

	// Вторая пятница мая 2026 - 8-е, июня - 12-е
	assert.Equal(t, []string{"2026-05-08", "2026-06-12"}, occurrenceDates(occurrences))
}

func TestExpand_MonthlyByWeekday_FifthInstanceMissing(t *testing.T) {
	rule := baseRule(domain.PatternMonthlyByWeekday)
	rule.DayOfWeek = ptr.Ptr(1)  // понедельник
	rule.WeekOfMonth = ptr.Ptr(5)

	// В июне 2026 пять понедельников (1, 8, 15, 22, 29), в мае - только четыре
	occurrences, err := Expand(rule, date(2026, time.May, 1), date(2026, time.June, 30))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-06-29"}, occurrenceDates(occurrences))
}

func TestExpand_Custom(t *testing.T) {
	rule := baseRule(domain.PatternCustom)
	rule.Expression = ptr.Ptr("FREQ=WEEKLY;BYDAY=TU,TH")

	occurrences, err := Expand(rule, date(2026, time.May, 4), date(2026, time.May, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-05-05", "2026-05-07"}, occurrenceDates(occurrences))
}

func TestExpand_CustomBadExpression(t *testing.T) {
	rule := baseRule(domain.PatternCustom)
	rule.Expression = ptr.Ptr("FREQ=NONSENSE")

	_, err := Expand(rule, date(2026, time.May, 1), date(2026, time.May, 31))
	assert.ErrorIs(t, err, ErrBadExpression)
}

func TestExpand_ValidityClipping(t *testing.T) {
	rule := baseRule(domain.PatternWorkdays)
	rule.ValidFrom = date(2026, time.May, 6)
	rule.ValidUntil = ptr.Ptr(date(2026, time.May, 7))

	occurrences, err := Expand(rule, date(2026, time.May, 1), date(2026, time.May, 31))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-05-06", "2026-05-07"}, occurrenceDates(occurrences))
}

func TestExpand_HorizonOutsideValidity(t *testing.T) {
	rule := baseRule(domain.PatternWorkdays)
	rule.ValidFrom = date(2027, time.January, 1)

	occurrences, err := Expand(rule, date(2026, time.May, 1), date(2026, time.May, 31))
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpand_InvalidHorizon(t *testing.T) {
	rule := baseRule(domain.PatternWorkdays)

	_, err := Expand(rule, date(2026, time.May, 31), date(2026, time.May, 1))
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestExpand_MissingParameter(t *testing.T) {
	testCases := []struct {
		name string
		rule *domain.RecurringRule
	}{
		{name: "weekly without dayOfWeek", rule: baseRule(domain.PatternWeekly)},
		{name: "biweekly without dayOfWeek", rule: baseRule(domain.PatternBiweekly)},
		{name: "monthly_by_day without dayOfMonth", rule: baseRule(domain.PatternMonthlyByDay)},
		{name: "monthly_by_weekday without parameters", rule: baseRule(domain.PatternMonthlyByWeekday)},
		{name: "custom without expression", rule: baseRule(domain.PatternCustom)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Expand(tc.rule, date(2026, time.May, 1), date(2026, time.May, 31))
			assert.ErrorIs(t, err, ErrMissingParameter)
		})
	}
}
