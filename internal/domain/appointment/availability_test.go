package appointment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

const testDate = "2026-10-15"

func openWindow(t *testing.T, start, end string) schedule.Window {
	t.Helper()
	s, err := schedule.ParseClock(start)
	require.NoError(t, err)
	e, err := schedule.ParseClock(end)
	require.NoError(t, err)
	return schedule.Window{Start: s, End: e}
}

func grid(from, to string, step int) []string {
	s, _ := schedule.ParseClock(from)
	e, _ := schedule.ParseClock(to)
	var out []string
	for t := s; t <= e; t += step {
		out = append(out, schedule.FormatClock(t))
	}
	return out
}

func TestComputeSlotsClosed(t *testing.T) {
	for _, dur := range []int{0, 30, 600} {
		slots := ComputeSlots(SlotQuery{
			Date:        testDate,
			Window:      schedule.Window{Closed: true},
			DurationMin: dur,
			Existing:    []Booked{{Date: testDate, StartTime: "10:00", DurationMin: 30, Status: StatusConfirmed}},
		})
		assert.Empty(t, slots)
		assert.NotNil(t, slots)
	}
}

func TestComputeSlotsEmptyDayCount(t *testing.T) {
	w := openWindow(t, "09:00", "18:00")

	for _, dur := range []int{15, 30, 45, 60, 90, 120} {
		t.Run(fmt.Sprintf("%dmin", dur), func(t *testing.T) {
			slots := ComputeSlots(SlotQuery{Date: testDate, Window: w, DurationMin: dur, IntervalMin: 30})

			expected := 0
			for start := w.Start; start < w.End; start += 30 {
				if start+dur <= w.End {
					expected++
				}
			}
			assert.Len(t, slots, expected)
			assert.Equal(t, "09:00", slots[0])
		})
	}
}

func TestComputeSlotsExistingAppointment(t *testing.T) {
	slots := ComputeSlots(SlotQuery{
		Date:        testDate,
		Window:      openWindow(t, "09:00", "18:00"),
		DurationMin: 30,
		IntervalMin: 30,
		Existing: []Booked{
			{ID: 1, Date: testDate, StartTime: "10:00", DurationMin: 60, Status: StatusConfirmed},
		},
	})

	expected := append([]string{"09:00", "09:30"}, grid("11:00", "17:30", 30)...)
	assert.Equal(t, expected, slots)
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
}

func TestComputeSlotsLunchBreak(t *testing.T) {
	w := openWindow(t, "09:00", "18:00")
	w.Lunch = &schedule.Interval{Start: 720, End: 780}

	short := ComputeSlots(SlotQuery{Date: testDate, Window: w, DurationMin: 30, IntervalMin: 30})
	assert.NotContains(t, short, "12:00")
	assert.NotContains(t, short, "12:30")
	assert.Contains(t, short, "11:30")
	assert.Contains(t, short, "13:00")

	long := ComputeSlots(SlotQuery{Date: testDate, Window: w, DurationMin: 60, IntervalMin: 30})
	assert.NotContains(t, long, "12:00")
	assert.NotContains(t, long, "11:30")
	assert.Contains(t, long, "11:00")
}

func TestComputeSlotsMustEndBeforeClosing(t *testing.T) {
	slots := ComputeSlots(SlotQuery{Date: testDate, Window: openWindow(t, "09:00", "12:00"), DurationMin: 90, IntervalMin: 30})
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestComputeSlotsNonPositiveDurationUsesInterval(t *testing.T) {
	w := openWindow(t, "09:00", "11:00")
	assert.Equal(t,
		ComputeSlots(SlotQuery{Date: testDate, Window: w, DurationMin: 30, IntervalMin: 30}),
		ComputeSlots(SlotQuery{Date: testDate, Window: w, DurationMin: 0, IntervalMin: 30}),
	)
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45"},
		ComputeSlots(SlotQuery{Date: testDate, Window: w, DurationMin: -5, IntervalMin: 15}))
}

func TestComputeSlotsDefaultInterval(t *testing.T) {
	slots := ComputeSlots(SlotQuery{Date: testDate, Window: openWindow(t, "09:00", "10:00")})
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestComputeSlotsProfessionalFilter(t *testing.T) {
	w := openWindow(t, "09:00", "12:00")
	existing := []Booked{
		{ID: 1, Date: testDate, StartTime: "09:00", DurationMin: 60, Status: StatusConfirmed, ProfessionalID: uintPtr(1)},
		{ID: 2, Date: testDate, StartTime: "11:00", DurationMin: 30, Status: StatusConfirmed},
		{ID: 3, Date: testDate, StartTime: "10:00", DurationMin: 30, Status: StatusCancelled, ProfessionalID: uintPtr(2)},
	}

	forTwo := ComputeSlots(SlotQuery{
		Date: testDate, Window: w, DurationMin: 30, IntervalMin: 30, Existing: existing,
		Scope: Scope{Professional: uintPtr(2), Policy: NoPreferenceBlocksAll},
	})
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:30"}, forTwo)

	forTwoNone := ComputeSlots(SlotQuery{
		Date: testDate, Window: w, DurationMin: 30, IntervalMin: 30, Existing: existing,
		Scope: Scope{Professional: uintPtr(2), Policy: NoPreferenceBlocksNone},
	})
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, forTwoNone)

	anyone := ComputeSlots(SlotQuery{
		Date: testDate, Window: w, DurationMin: 30, IntervalMin: 30, Existing: existing,
	})
	assert.Equal(t, []string{"10:00", "10:30", "11:30"}, anyone)
}

func TestComputeSlotsProfessionalBlockedWindows(t *testing.T) {
	slots := ComputeSlots(SlotQuery{
		Date: testDate, Window: openWindow(t, "09:00", "12:00"), DurationMin: 30, IntervalMin: 30,
		Blocked: []schedule.Interval{{Start: 600, End: 660}},
	})
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, slots)
}

func TestComputeSlotsIsDeterministic(t *testing.T) {
	q := SlotQuery{
		Date: testDate, Window: openWindow(t, "08:00", "20:00"), DurationMin: 45, IntervalMin: 15,
		Existing: []Booked{
			{Date: testDate, StartTime: "09:10", DurationMin: 40, Status: StatusPending},
			{Date: testDate, StartTime: "15:00", DurationMin: 90, Status: StatusConfirmed},
		},
	}
	assert.Equal(t, ComputeSlots(q), ComputeSlots(q))
}

func TestComputeSlotsNeverConflictWithInput(t *testing.T) {
	w := openWindow(t, "08:00", "20:00")
	w.Lunch = &schedule.Interval{Start: 720, End: 765}
	existing := []Booked{
		{Date: testDate, StartTime: "08:20", DurationMin: 25, Status: StatusConfirmed, ProfessionalID: uintPtr(1)},
		{Date: testDate, StartTime: "10:00", DurationMin: 50, Status: StatusPending, ProfessionalID: uintPtr(2)},
		{Date: testDate, StartTime: "13:10", DurationMin: 70, Status: StatusConfirmed},
		{Date: testDate, StartTime: "17:00", DurationMin: 30, Status: StatusCancelled, ProfessionalID: uintPtr(1)},
	}

	scopes := []Scope{
		{},
		{Professional: uintPtr(1), Policy: NoPreferenceBlocksAll},
		{Professional: uintPtr(2), Policy: NoPreferenceBlocksNone},
	}

	for _, scope := range scopes {
		for _, dur := range []int{15, 30, 50, 75} {
			slots := ComputeSlots(SlotQuery{Date: testDate, Window: w, Existing: existing, DurationMin: dur, IntervalMin: 15, Scope: scope})
			for _, s := range slots {
				_, conflict := FindConflict(existing, testDate, s, dur, scope)
				assert.False(t, conflict, "slot %s (%d min) conflicts", s, dur)
			}
		}
	}
}

func TestEffectiveDuration(t *testing.T) {
	assert.Equal(t, 30, EffectiveDuration(0, 30))
	assert.Equal(t, 30, EffectiveDuration(-1, 0))
	assert.Equal(t, 45, EffectiveDuration(45, 15))
}
