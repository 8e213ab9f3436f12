package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestOverlapsMinutes(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aDur int
		bStart, bDur int
		want         bool
	}{
		{"identical", 600, 30, 600, 30, true},
		{"touching end to start", 600, 30, 630, 30, false},
		{"nested", 600, 120, 630, 30, true},
		{"partial", 600, 60, 630, 60, true},
		{"disjoint", 600, 30, 700, 30, false},
		{"zero width a", 600, 0, 600, 30, false},
		{"zero width b", 600, 30, 610, 0, false},
		{"negative width", 600, -10, 590, 30, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OverlapsMinutes(tc.aStart, tc.aDur, tc.bStart, tc.bDur))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	starts := []int{0, 15, 30, 45, 60, 90, 120}
	durs := []int{0, 15, 30, 45, 60}

	for _, as := range starts {
		for _, ad := range durs {
			for _, bs := range starts {
				for _, bd := range durs {
					assert.Equal(t,
						OverlapsMinutes(as, ad, bs, bd),
						OverlapsMinutes(bs, bd, as, ad),
						"a=[%d,+%d) b=[%d,+%d)", as, ad, bs, bd,
					)
				}
			}
		}
	}
}

func TestOverlapsClockStrings(t *testing.T) {
	assert.True(t, Overlaps("10:00", 60, "10:30", 30))
	assert.False(t, Overlaps("10:00", 60, "11:00", 30))
	assert.False(t, Overlaps("bad", 60, "10:00", 30))
}

func TestFindConflictScope(t *testing.T) {
	existing := []Booked{
		{ID: 1, Date: "2026-10-15", StartTime: "10:00", DurationMin: 60, Status: StatusConfirmed, ProfessionalID: uintPtr(7)},
		{ID: 2, Date: "2026-10-15", StartTime: "14:00", DurationMin: 30, Status: StatusPending},
		{ID: 3, Date: "2026-10-15", StartTime: "16:00", DurationMin: 30, Status: StatusCancelled, ProfessionalID: uintPtr(7)},
		{ID: 4, Date: "2026-10-16", StartTime: "09:00", DurationMin: 30, Status: StatusConfirmed, ProfessionalID: uintPtr(7)},
	}
	date := "2026-10-15"

	t.Run("same professional conflicts", func(t *testing.T) {
		b, ok := FindConflict(existing, date, "10:30", 30, Scope{Professional: uintPtr(7)})
		assert.True(t, ok)
		assert.Equal(t, uint(1), b.ID)
	})

	t.Run("other professional is free", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "10:30", 30, Scope{Professional: uintPtr(8)})
		assert.False(t, ok)
	})

	t.Run("no preference booking blocks everyone under blocks_all", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "14:00", 30, Scope{Professional: uintPtr(8), Policy: NoPreferenceBlocksAll})
		assert.True(t, ok)
	})

	t.Run("no preference booking blocks nobody under blocks_none", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "14:00", 30, Scope{Professional: uintPtr(8), Policy: NoPreferenceBlocksNone})
		assert.False(t, ok)
	})

	t.Run("no professional requested sees every booking", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "10:15", 15, Scope{})
		assert.True(t, ok)
	})

	t.Run("cancelled never conflicts", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "16:00", 30, Scope{Professional: uintPtr(7)})
		assert.False(t, ok)
	})

	t.Run("other dates are ignored", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "09:00", 30, Scope{Professional: uintPtr(7)})
		assert.False(t, ok)
	})

	t.Run("excluded id is ignored", func(t *testing.T) {
		_, ok := FindConflict(existing, date, "10:00", 60, Scope{Professional: uintPtr(7), ExcludeID: 1})
		assert.False(t, ok)
	})
}
