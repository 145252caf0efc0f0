package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    TimeString
		expectedErr bool
	}{
		{name: "valid morning time", input: "09:00", expected: "09:00"},
		{name: "valid midnight", input: "00:00", expected: "00:00"},
		{name: "valid end of day", input: "23:59", expected: "23:59"},
		{name: "missing leading zero", input: "9:00", expectedErr: true},
		{name: "single digit minute", input: "09:5", expectedErr: true},
		{name: "surrounding spaces", input: " 09:00", expectedErr: true},
		{name: "out of range hour", input: "24:00", expectedErr: true},
		{name: "out of range minute", input: "10:60", expectedErr: true},
		{name: "empty string", input: "", expectedErr: true},
		{name: "garbage", input: "abc", expectedErr: true},
		{name: "with seconds", input: "10:00:00", expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tc.input)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ts)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 5, 20, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("14:30"), NewTimeString(moment))
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("11:00").IsBefore("10:00"))

	assert.True(t, TimeString("11:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Некорректные значения не сравниваются
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("bad"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	testCases := []struct {
		name        string
		start       TimeString
		minutes     int
		expected    TimeString
		expectedErr bool
	}{
		{name: "within hour", start: "10:00", minutes: 30, expected: "10:30"},
		{name: "across hour boundary", start: "10:45", minutes: 30, expected: "11:15"},
		{name: "negative shift", start: "10:00", minutes: -15, expected: "09:45"},
		{name: "past midnight", start: "23:50", minutes: 20, expectedErr: true},
		{name: "before day start", start: "00:10", minutes: -20, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.start.AddMinutes(tc.minutes)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestTimeString_MinutesUntil(t *testing.T) {
	minutes, err := TimeString("09:00").MinutesUntil("12:30")
	require.NoError(t, err)
	assert.Equal(t, 210, minutes)

	minutes, err = TimeString("12:30").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -210, minutes)
}

func TestMax(t *testing.T) {
	assert.Equal(t, TimeString("12:00"), Max("09:00", "12:00"))
	assert.Equal(t, TimeString("12:00"), Max("12:00", "09:00"))
	assert.Equal(t, TimeString("12:00"), Max("12:00", "12:00"))
}
