package calendar_test

import (
	"testing"
	"time"

	"futsal/calendar"
	"futsal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tz = "Africa/Mogadishu" // UTC+3, no DST

func fixedCal(t *testing.T, at time.Time) *calendar.BusinessCalendar {
	t.Helper()
	cal, err := calendar.NewFixed(tz, at)
	require.NoError(t, err)
	return cal
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	_, err := calendar.New("Not/AZone")
	assert.Error(t, err)
}

func TestMidnightUTCRoundTrip(t *testing.T) {
	cal, err := calendar.New(tz)
	require.NoError(t, err)

	d, err := cal.MidnightUTC("2024-01-03")
	require.NoError(t, err)

	// Business midnight lands on the previous UTC day at 21:00.
	assert.Equal(t, time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC), d)
	// The round trip through DateKey must still yield the original date.
	assert.Equal(t, "2024-01-03", cal.DateKey(d))
}

func TestMidnightUTCRejectsMalformedDate(t *testing.T) {
	cal, err := calendar.New(tz)
	require.NoError(t, err)

	for _, bad := range []string{"", "03-01-2024", "2024/01/03", "2024-13-01", "yesterday"} {
		_, err := cal.MidnightUTC(bad)
		assert.ErrorIs(t, err, models.ErrInvalidDate, "input %q", bad)
	}
}

func TestWeekdayUsesBusinessTimezone(t *testing.T) {
	cal, err := calendar.New(tz)
	require.NoError(t, err)

	// 2024-01-03 is a Wednesday in Mogadishu; the stored instant is still
	// Tuesday in UTC.
	d, err := cal.MidnightUTC("2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, d.UTC().Weekday())
	assert.Equal(t, 3, cal.Weekday(d))
}

func TestTodayCrossesUTCMidnight(t *testing.T) {
	// 22:00 UTC on the 9th is already 01:00 on the 10th in Mogadishu.
	cal := fixedCal(t, time.Date(2024, 1, 9, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-10", cal.Today())
}

func TestIsPastDateAndIsToday(t *testing.T) {
	cal := fixedCal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	yesterday, err := cal.MidnightUTC("2024-01-09")
	require.NoError(t, err)
	today, err := cal.MidnightUTC("2024-01-10")
	require.NoError(t, err)
	tomorrow, err := cal.MidnightUTC("2024-01-11")
	require.NoError(t, err)

	assert.True(t, cal.IsPastDate(yesterday))
	assert.False(t, cal.IsPastDate(today))
	assert.False(t, cal.IsPastDate(tomorrow))

	assert.True(t, cal.IsToday(today))
	assert.False(t, cal.IsToday(yesterday))
	assert.False(t, cal.IsToday(tomorrow))
}

func TestNowMinutes(t *testing.T) {
	// 09:00 UTC is 12:00 in Mogadishu.
	cal := fixedCal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, 12*60, cal.NowMinutes())
}

func TestTruncateToMidnightUTC(t *testing.T) {
	cal, err := calendar.New(tz)
	require.NoError(t, err)

	midnight, err := cal.MidnightUTC("2024-01-10")
	require.NoError(t, err)

	afternoon := time.Date(2024, 1, 10, 13, 45, 0, 0, cal.Location())
	assert.Equal(t, midnight, cal.TruncateToMidnightUTC(afternoon))
}

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"08:05": 485,
		"9:30":  570,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := calendar.TimeToMinutes(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	for _, bad := range []string{"", "24:00", "12:60", "12.30", "12:3", "noon"} {
		_, err := calendar.TimeToMinutes(bad)
		assert.ErrorIs(t, err, models.ErrInvalidTime, "input %q", bad)
	}
}

func TestCompareTimeStrings(t *testing.T) {
	diff, err := calendar.CompareTimeStrings("18:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 60, diff)

	diff, err = calendar.CompareTimeStrings("08:15", "09:00")
	require.NoError(t, err)
	assert.Equal(t, -45, diff)

	_, err = calendar.CompareTimeStrings("08:15", "25:00")
	assert.ErrorIs(t, err, models.ErrInvalidTime)
}
