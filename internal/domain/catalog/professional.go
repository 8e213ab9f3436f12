package catalog

import "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"

// UnavailableWindow is a recurring weekly block in a professional's agenda.
type UnavailableWindow struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Professional struct {
	ID                 uint
	Name               string
	ExcludedServiceIDs []uint
	Unavailable        []UnavailableWindow
}

// Performs reports whether none of the given services is excluded.
func (p Professional) Performs(serviceIDs []uint) bool {
	if len(p.ExcludedServiceIDs) == 0 {
		return true
	}
	excluded := make(map[uint]struct{}, len(p.ExcludedServiceIDs))
	for _, id := range p.ExcludedServiceIDs {
		excluded[id] = struct{}{}
	}
	for _, id := range serviceIDs {
		if _, ok := excluded[id]; ok {
			return false
		}
	}
	return true
}

// BlockedOn lists the unavailable intervals for a weekday.
// Malformed windows are skipped; they are rejected when edited.
func (p Professional) BlockedOn(weekday int) []schedule.Interval {
	var out []schedule.Interval
	for _, w := range p.Unavailable {
		if w.Weekday != weekday {
			continue
		}
		start, err := schedule.ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		end, err := schedule.ParseClock(w.EndTime)
		if err != nil || end <= start {
			continue
		}
		out = append(out, schedule.Interval{Start: start, End: end})
	}
	return out
}
