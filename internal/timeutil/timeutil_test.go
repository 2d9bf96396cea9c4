package timeutil_test

import (
	"testing"
	"time"

	"github.com/rpggio/statusdeck/internal/timeutil"
	"github.com/stretchr/testify/require"
)

func TestWeekMonday(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-01-08", "2024-01-08"}, // already a Monday
		{"2024-01-10", "2024-01-08"}, // Wednesday
		{"2024-01-13", "2024-01-08"}, // Saturday
		{"2024-01-14", "2024-01-08"}, // Sunday counts as day 6 of the prior week
		{"2024-01-01", "2024-01-01"}, // New Year Monday
		{"2023-01-01", "2022-12-26"}, // Sunday crossing a year boundary
		{"2024-03-01", "2024-02-26"}, // leap-year February
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, timeutil.WeekMonday(tc.date), "WeekMonday(%s)", tc.date)
	}
}

func TestWeekMondayIdempotent(t *testing.T) {
	dates := []string{"2024-01-10", "2024-02-29", "2023-12-31", "2025-06-15"}
	for _, d := range dates {
		monday := timeutil.WeekMonday(d)
		require.Equal(t, monday, timeutil.WeekMonday(monday))
	}
}

func TestShiftDays(t *testing.T) {
	require.Equal(t, "2024-01-01", timeutil.ShiftDays("2023-12-31", 1))
	require.Equal(t, "2023-12-31", timeutil.ShiftDays("2024-01-01", -1))
	require.Equal(t, "2024-02-29", timeutil.ShiftDays("2024-02-28", 1)) // leap year
	require.Equal(t, "2023-03-01", timeutil.ShiftDays("2023-02-28", 1)) // non-leap year
	require.Equal(t, "2024-05-01", timeutil.ShiftDays("2024-04-30", 1)) // 30-day month
	require.Equal(t, "2024-01-31", timeutil.ShiftDays("2024-02-01", -1))
}

func TestShiftWeeksRoundTrip(t *testing.T) {
	dates := []string{"2024-01-08", "2024-02-29", "2023-12-25", "2025-07-04"}
	for _, d := range dates {
		for _, n := range []int{1, 4, 13, 52} {
			require.Equal(t, d, timeutil.ShiftWeeks(timeutil.ShiftWeeks(d, n), -n))
		}
	}
}

func TestShiftWeeksYearRollover(t *testing.T) {
	require.Equal(t, "2025-01-06", timeutil.ShiftWeeks("2024-12-30", 1))
	require.Equal(t, "2024-12-30", timeutil.ShiftWeeks("2025-01-06", -1))
}

func TestFormatRange(t *testing.T) {
	require.Equal(t, "Jan 8 - Jan 14, 2024", timeutil.FormatRange("2024-01-08"))
	require.Equal(t, "Dec 30, 2024 - Jan 5, 2025", timeutil.FormatRange("2024-12-30"))
	require.Equal(t, "", timeutil.FormatRange("not-a-date"))
}

func TestIsFuture(t *testing.T) {
	today := timeutil.Today()
	require.False(t, timeutil.IsFuture(today), "today is not future")
	require.True(t, timeutil.IsFuture(timeutil.ShiftDays(today, 1)))
	require.False(t, timeutil.IsFuture(timeutil.ShiftDays(today, -1)))
	require.False(t, timeutil.IsFuture("garbage"))
}

func TestMalformedDatesPassThrough(t *testing.T) {
	require.Equal(t, "bogus", timeutil.WeekMonday("bogus"))
	require.Equal(t, "bogus", timeutil.ShiftDays("bogus", 3))
	require.Equal(t, "bogus", timeutil.ShiftWeeks("bogus", -2))
}

func TestParseDay(t *testing.T) {
	got, err := timeutil.ParseDay("2024-06-10")
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)))

	_, err = timeutil.ParseDay("06/10/2024")
	require.Error(t, err)
}

func TestRecentOptionsWeeks(t *testing.T) {
	opts := timeutil.RecentOptionsFrom("2024-01-10", 3, timeutil.UnitWeeks)
	require.Len(t, opts, 3)
	require.Equal(t, "2024-01-08", opts[0].Value)
	require.Equal(t, "2024-01-01", opts[1].Value)
	require.Equal(t, "2023-12-25", opts[2].Value)
	require.Equal(t, "Jan 8 - Jan 14, 2024", opts[0].Label)
	require.Equal(t, "Dec 25 - Dec 31, 2023", opts[2].Label)
}

func TestRecentOptionsDays(t *testing.T) {
	opts := timeutil.RecentOptionsFrom("2024-03-01", 2, timeutil.UnitDays)
	require.Len(t, opts, 2)
	require.Equal(t, "2024-03-01", opts[0].Value)
	require.Equal(t, "2024-02-29", opts[1].Value)
	require.Equal(t, "Fri, Mar 1", opts[0].Label)

	require.Empty(t, timeutil.RecentOptionsFrom("2024-03-01", 0, timeutil.UnitDays))
}
