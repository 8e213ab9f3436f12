package schedule

import "fmt"

// Day is the operating rule for one weekday.
type Day struct {
	Weekday          int
	IsOpen           bool
	StartTime        string
	EndTime          string
	HasLunchBreak    bool
	LunchStart       string
	LunchDurationMin int
}

// Week holds the business operating calendar indexed by weekday.
type Week map[int]Day

// Window is the open range of a single date. Closed windows carry no times.
type Window struct {
	Closed bool
	Start  int
	End    int
	Lunch  *Interval
}

func (w Window) StartTime() string { return FormatClock(w.Start) }
func (w Window) EndTime() string   { return FormatClock(w.End) }

type InvalidScheduleError struct {
	Weekday int
	Reason  string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule for weekday %d: %s", e.Weekday, e.Reason)
}

func invalid(weekday int, reason string) error {
	return &InvalidScheduleError{Weekday: weekday, Reason: reason}
}

// Validate checks the day invariants. Closed days are always valid.
func (d Day) Validate() error {
	_, err := d.window()
	return err
}

func (d Day) window() (Window, error) {
	if d.Weekday < 0 || d.Weekday > 6 {
		return Window{}, invalid(d.Weekday, "weekday out of range")
	}
	if !d.IsOpen {
		return Window{Closed: true}, nil
	}

	start, err := ParseClock(d.StartTime)
	if err != nil {
		return Window{}, invalid(d.Weekday, "invalid start_time")
	}
	end, err := ParseClock(d.EndTime)
	if err != nil {
		return Window{}, invalid(d.Weekday, "invalid end_time")
	}
	if start >= end {
		return Window{}, invalid(d.Weekday, "start_time must be before end_time")
	}

	w := Window{Start: start, End: end}
	if !d.HasLunchBreak {
		return w, nil
	}

	lunchStart, err := ParseClock(d.LunchStart)
	if err != nil {
		return Window{}, invalid(d.Weekday, "invalid lunch_start")
	}
	if d.LunchDurationMin <= 0 {
		return Window{}, invalid(d.Weekday, "lunch duration must be positive")
	}
	lunchEnd := lunchStart + d.LunchDurationMin
	if lunchStart < start || lunchStart >= end || lunchEnd > end {
		return Window{}, invalid(d.Weekday, "lunch break must be inside opening hours")
	}

	w.Lunch = &Interval{Start: lunchStart, End: lunchEnd}
	return w, nil
}

// GetOpenWindow resolves the open window of a calendar date.
// Missing or closed weekdays yield a Closed window, never an error.
func GetOpenWindow(date string, week Week) (Window, error) {
	weekday, err := Weekday(date)
	if err != nil {
		return Window{}, err
	}

	day, ok := week[weekday]
	if !ok {
		return Window{Closed: true}, nil
	}
	day.Weekday = weekday
	return day.window()
}
