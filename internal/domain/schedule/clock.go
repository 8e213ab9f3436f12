package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	minutesPerDay = 24 * 60
)

var ErrInvalidDate = errors.New("invalid_date")

// ParseClock converts a "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock. Always zero-padded 24h.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Weekday derives 0=Sunday..6=Saturday from a "YYYY-MM-DD" date.
// Dates are calendar days, no timezone is involved.
func Weekday(date string) (int, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, ErrInvalidDate
	}
	return int(d.Weekday()), nil
}

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (i Interval) Minutes() int {
	return i.End - i.Start
}
