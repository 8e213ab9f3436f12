package appointment

import "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"

const DefaultIntervalMinutes = 30

type SlotQuery struct {
	Date        string
	Window      schedule.Window
	Existing    []Booked
	DurationMin int
	IntervalMin int
	Scope       Scope
	// Blocked are the professional's recurring unavailable windows for the date.
	Blocked []schedule.Interval
}

// EffectiveDuration applies the minimum bookable unit: a non-positive
// duration counts as one interval.
func EffectiveDuration(durationMin, intervalMin int) int {
	if intervalMin <= 0 {
		intervalMin = DefaultIntervalMinutes
	}
	if durationMin <= 0 {
		return intervalMin
	}
	return durationMin
}

// ComputeSlots lists the bookable start times ("HH:MM", ascending) of a date.
// It is pure: same query, same answer.
func ComputeSlots(q SlotQuery) []string {
	slots := []string{}
	if q.Window.Closed {
		return slots
	}

	interval := q.IntervalMin
	if interval <= 0 {
		interval = DefaultIntervalMinutes
	}
	duration := EffectiveDuration(q.DurationMin, interval)

	for t := q.Window.Start; t < q.Window.End; t += interval {
		if lunch := q.Window.Lunch; lunch != nil {
			// lunch blocks at grid granularity, then for the whole service
			if OverlapsMinutes(t, interval, lunch.Start, lunch.Minutes()) ||
				OverlapsMinutes(t, duration, lunch.Start, lunch.Minutes()) {
				continue
			}
		}

		if t+duration > q.Window.End {
			continue
		}

		if blocked(q.Blocked, t, duration) {
			continue
		}

		if _, ok := findConflictMinutes(q.Existing, q.Date, t, duration, q.Scope); ok {
			continue
		}

		slots = append(slots, schedule.FormatClock(t))
	}

	return slots
}

func blocked(windows []schedule.Interval, start, dur int) bool {
	for _, w := range windows {
		if OverlapsMinutes(start, dur, w.Start, w.Minutes()) {
			return true
		}
	}
	return false
}

// Contains reports whether slot is one of slots.
func Contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
