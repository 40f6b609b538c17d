//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"consultbook/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, hour, minute int) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.NewTimeOfDay(hour, minute)
	require.NoError(t, err)
	return tod
}

func day(t *testing.T, startH, startM, endH, endM int) schedule.DayInput {
	t.Helper()
	return schedule.DayInput{
		Start: mustTime(t, startH, startM),
		End:   mustTime(t, endH, endM),
	}
}

func TestTimeOfDay(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		cases := []struct {
			name    string
			hour    int
			minute  int
			minutes int
		}{
			{name: "midnight", hour: 0, minute: 0, minutes: 0},
			{name: "morning", hour: 9, minute: 30, minutes: 570},
			{name: "end of day", hour: 24, minute: 0, minutes: 1440},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				tod, err := schedule.NewTimeOfDay(tc.hour, tc.minute)
				require.NoError(t, err)
				assert.Equal(t, tc.minutes, tod.Minutes())
			})
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := []struct {
			name   string
			hour   int
			minute int
		}{
			{name: "negative hour", hour: -1, minute: 0},
			{name: "hour too large", hour: 25, minute: 0},
			{name: "minute too large", hour: 10, minute: 60},
			{name: "past end of day", hour: 24, minute: 30},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := schedule.NewTimeOfDay(tc.hour, tc.minute)
				assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
			})
		}
	})

	t.Run("parse", func(t *testing.T) {
		tod, err := schedule.ParseTimeOfDay("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", tod.String())

		_, err = schedule.ParseTimeOfDay("nonsense")
		assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)

		_, err = schedule.ParseTimeOfDay("25:00")
		assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
	})
}

func TestNewInterval(t *testing.T) {
	t.Run("start before end", func(t *testing.T) {
		iv, err := schedule.NewInterval(mustTime(t, 10, 0), mustTime(t, 19, 0))
		require.NoError(t, err)
		assert.Equal(t, "10:00-19:00", iv.String())
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := schedule.NewInterval(mustTime(t, 10, 0), mustTime(t, 10, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := schedule.NewInterval(mustTime(t, 19, 0), mustTime(t, 10, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("off-grid boundary", func(t *testing.T) {
		_, err := schedule.NewInterval(mustTime(t, 10, 15), mustTime(t, 19, 0))
		assert.ErrorIs(t, err, schedule.ErrUnalignedTime)
	})
}

func TestNewWeek(t *testing.T) {
	t.Run("full week", func(t *testing.T) {
		week, err := schedule.NewWeek(map[time.Weekday]schedule.DayInput{
			time.Monday:    day(t, 10, 0, 19, 0),
			time.Tuesday:   day(t, 10, 0, 19, 0),
			time.Wednesday: day(t, 10, 0, 19, 0),
			time.Thursday:  day(t, 10, 0, 19, 0),
			time.Friday:    day(t, 10, 0, 17, 0),
		})
		require.NoError(t, err)

		iv, ok := week.Interval(time.Friday)
		require.True(t, ok)
		assert.Equal(t, "10:00-17:00", iv.String())

		_, ok = week.Interval(time.Saturday)
		assert.False(t, ok)
		_, ok = week.Interval(time.Sunday)
		assert.False(t, ok)

		assert.Equal(t, []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		}, week.WorkingDays())
	})

	t.Run("empty week means all days off", func(t *testing.T) {
		week, err := schedule.NewWeek(nil)
		require.NoError(t, err)
		assert.Empty(t, week.WorkingDays())
	})

	t.Run("one bad day rejects the whole week", func(t *testing.T) {
		_, err := schedule.NewWeek(map[time.Weekday]schedule.DayInput{
			time.Monday:  day(t, 10, 0, 19, 0),
			time.Tuesday: day(t, 19, 0, 10, 0),
		})
		require.Error(t, err)

		var verr *schedule.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Days, 1)
		assert.Equal(t, time.Tuesday, verr.Days[0].Day)
	})

	t.Run("all bad days are reported in week order", func(t *testing.T) {
		_, err := schedule.NewWeek(map[time.Weekday]schedule.DayInput{
			time.Sunday:    day(t, 12, 0, 9, 0),
			time.Wednesday: day(t, 18, 0, 18, 0),
			time.Monday:    day(t, 10, 0, 19, 0),
		})
		require.Error(t, err)

		var verr *schedule.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Days, 2)
		assert.Equal(t, time.Wednesday, verr.Days[0].Day)
		assert.Equal(t, time.Sunday, verr.Days[1].Day)
	})
}
