package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekWith(days ...Day) Week {
	w := Week{}
	for _, d := range days {
		w[d.Weekday] = d
	}
	return w
}

func TestParseAndFormatClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", FormatClock(m))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(1439))

	_, err = ParseClock("9h30")
	assert.Error(t, err)
}

func TestGetOpenWindow(t *testing.T) {
	// 2026-10-15 is a Thursday.
	thursday := Day{Weekday: 4, IsOpen: true, StartTime: "09:00", EndTime: "18:00"}

	t.Run("open day without lunch", func(t *testing.T) {
		w, err := GetOpenWindow("2026-10-15", weekWith(thursday))
		require.NoError(t, err)
		assert.False(t, w.Closed)
		assert.Equal(t, "09:00", w.StartTime())
		assert.Equal(t, "18:00", w.EndTime())
		assert.Nil(t, w.Lunch)
	})

	t.Run("lunch window is precomputed", func(t *testing.T) {
		d := thursday
		d.HasLunchBreak = true
		d.LunchStart = "12:00"
		d.LunchDurationMin = 60

		w, err := GetOpenWindow("2026-10-15", weekWith(d))
		require.NoError(t, err)
		require.NotNil(t, w.Lunch)
		assert.Equal(t, Interval{Start: 720, End: 780}, *w.Lunch)
	})

	t.Run("missing weekday is closed", func(t *testing.T) {
		w, err := GetOpenWindow("2026-10-18", weekWith(thursday))
		require.NoError(t, err)
		assert.True(t, w.Closed)
	})

	t.Run("closed flag wins over hours", func(t *testing.T) {
		d := thursday
		d.IsOpen = false
		w, err := GetOpenWindow("2026-10-15", weekWith(d))
		require.NoError(t, err)
		assert.True(t, w.Closed)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := GetOpenWindow("15/10/2026", weekWith(thursday))
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestDayValidate(t *testing.T) {
	cases := []struct {
		name string
		day  Day
		ok   bool
	}{
		{"closed day ignores times", Day{Weekday: 0}, true},
		{"valid open day", Day{Weekday: 1, IsOpen: true, StartTime: "08:00", EndTime: "12:00"}, true},
		{"start equals end", Day{Weekday: 1, IsOpen: true, StartTime: "08:00", EndTime: "08:00"}, false},
		{"start after end", Day{Weekday: 1, IsOpen: true, StartTime: "18:00", EndTime: "08:00"}, false},
		{"lunch before opening", Day{Weekday: 1, IsOpen: true, StartTime: "09:00", EndTime: "18:00", HasLunchBreak: true, LunchStart: "08:30", LunchDurationMin: 60}, false},
		{"lunch runs past closing", Day{Weekday: 1, IsOpen: true, StartTime: "09:00", EndTime: "18:00", HasLunchBreak: true, LunchStart: "17:30", LunchDurationMin: 60}, false},
		{"lunch ends at closing", Day{Weekday: 1, IsOpen: true, StartTime: "09:00", EndTime: "18:00", HasLunchBreak: true, LunchStart: "17:00", LunchDurationMin: 60}, true},
		{"lunch without duration", Day{Weekday: 1, IsOpen: true, StartTime: "09:00", EndTime: "18:00", HasLunchBreak: true, LunchStart: "12:00"}, false},
		{"garbage clock", Day{Weekday: 1, IsOpen: true, StartTime: "nine", EndTime: "18:00"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.day.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var invalidErr *InvalidScheduleError
			assert.True(t, errors.As(err, &invalidErr))
		})
	}
}

func TestGetOpenWindowRejectsInvalidDay(t *testing.T) {
	bad := Day{Weekday: 4, IsOpen: true, StartTime: "18:00", EndTime: "09:00"}
	_, err := GetOpenWindow("2026-10-15", weekWith(bad))

	var invalidErr *InvalidScheduleError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 4, invalidErr.Weekday)
}
