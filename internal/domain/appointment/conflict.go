package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Booked is the occupancy of an existing appointment.
type Booked struct {
	ID             uint
	Date           string
	StartTime      string
	DurationMin    int
	Status         Status
	ProfessionalID *uint
}

type NoPreferencePolicy string

const (
	NoPreferenceBlocksAll  NoPreferencePolicy = models.NoPreferenceBlocksAll
	NoPreferenceBlocksNone NoPreferencePolicy = models.NoPreferenceBlocksNone
)

func ParsePolicy(s string) NoPreferencePolicy {
	if s == models.NoPreferenceBlocksNone {
		return NoPreferenceBlocksNone
	}
	return NoPreferenceBlocksAll
}

// Scope selects which existing bookings compete for the same agenda.
//
// With a professional, a booking competes when it belongs to that
// professional, or has no professional and Policy is NoPreferenceBlocksAll.
// Without a professional every booking competes (one shared calendar).
type Scope struct {
	Professional *uint
	Policy       NoPreferencePolicy
	// ExcludeID skips one appointment, used when rescheduling it.
	ExcludeID uint
}

func (s Scope) includes(b Booked) bool {
	if b.Status == StatusCancelled {
		return false
	}
	if s.ExcludeID != 0 && b.ID == s.ExcludeID {
		return false
	}
	if s.Professional == nil {
		return true
	}
	if b.ProfessionalID == nil {
		return s.Policy != NoPreferenceBlocksNone
	}
	return *b.ProfessionalID == *s.Professional
}

// OverlapsMinutes tests [aStart, aStart+aDur) against [bStart, bStart+bDur).
// Zero-width intervals never overlap anything.
func OverlapsMinutes(aStart, aDur, bStart, bDur int) bool {
	if aDur <= 0 || bDur <= 0 {
		return false
	}
	return aStart < bStart+bDur && bStart < aStart+aDur
}

// Overlaps is OverlapsMinutes over "HH:MM" clocks. Unparsable clocks never overlap.
func Overlaps(aStart string, aDur int, bStart string, bDur int) bool {
	a, err := schedule.ParseClock(aStart)
	if err != nil {
		return false
	}
	b, err := schedule.ParseClock(bStart)
	if err != nil {
		return false
	}
	return OverlapsMinutes(a, aDur, b, bDur)
}

// FindConflict returns the first in-scope booking on date that overlaps
// [start, start+dur).
func FindConflict(existing []Booked, date, start string, dur int, scope Scope) (Booked, bool) {
	startMin, err := schedule.ParseClock(start)
	if err != nil {
		return Booked{}, false
	}
	return findConflictMinutes(existing, date, startMin, dur, scope)
}

func findConflictMinutes(existing []Booked, date string, start, dur int, scope Scope) (Booked, bool) {
	for _, b := range existing {
		if b.Date != date || !scope.includes(b) {
			continue
		}
		bStart, err := schedule.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		if OverlapsMinutes(start, dur, bStart, b.DurationMin) {
			return b, true
		}
	}
	return Booked{}, false
}
