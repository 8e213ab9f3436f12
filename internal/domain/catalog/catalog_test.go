package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func testIndex() *Index {
	return NewIndex(
		[]Service{
			{ID: 1, Name: "Corte", Price: decimal.NewFromInt(40), DurationMin: 30, Active: true},
			{ID: 2, Name: "Barba", Price: decimal.NewFromInt(30), PromoPrice: decimal.NewNullDecimal(decimal.NewFromInt(25)), DurationMin: 20, Active: true},
			{ID: 3, Name: "Luzes", Price: decimal.NewFromInt(90), DurationMin: 90, Active: false},
		},
		[]Combo{
			{ID: 10, Name: "Corte + Barba", ServiceIDs: []uint{1, 2}, Price: decimal.NewFromInt(60), DurationMin: 45, Active: true},
		},
	)
}

func TestResolve(t *testing.T) {
	idx := testIndex()

	totals, err := idx.Resolve([]ItemRef{
		{Kind: KindService, ID: 1},
		{Kind: KindService, ID: 2},
		{Kind: KindCombo, ID: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, 95, totals.DurationMin)
	assert.True(t, totals.Price.Equal(decimal.NewFromInt(125)), totals.Price.String())
	assert.Equal(t, []string{"Corte", "Barba", "Corte + Barba"}, totals.Names)
	assert.Equal(t, []uint{1, 2}, totals.ServiceIDs)
	assert.Equal(t, []uint{10}, totals.ComboIDs)
}

func TestResolveComboUsesOwnDuration(t *testing.T) {
	totals, err := testIndex().Resolve([]ItemRef{{Kind: KindCombo, ID: 10}})
	require.NoError(t, err)
	assert.Equal(t, 45, totals.DurationMin)
}

func TestResolveRejectsInactiveAndUnknown(t *testing.T) {
	idx := testIndex()

	_, err := idx.Resolve([]ItemRef{{Kind: KindService, ID: 3}})
	assert.True(t, httperr.IsBusiness(err, "item_not_found"))

	_, err = idx.Resolve([]ItemRef{{Kind: KindCombo, ID: 99}})
	assert.True(t, httperr.IsBusiness(err, "item_not_found"))

	_, err = idx.Resolve([]ItemRef{{Kind: "package", ID: 1}})
	assert.True(t, httperr.IsBusiness(err, "invalid_item_kind"))
}

func TestServiceIDsOfExpandsCombos(t *testing.T) {
	ids := testIndex().ServiceIDsOf([]ItemRef{{Kind: KindCombo, ID: 10}, {Kind: KindService, ID: 1}})
	assert.Equal(t, []uint{1, 2, 1}, ids)
}

func TestProfessionalPerforms(t *testing.T) {
	p := Professional{ID: 7, ExcludedServiceIDs: []uint{2}}
	assert.True(t, p.Performs([]uint{1}))
	assert.False(t, p.Performs([]uint{1, 2}))
	assert.True(t, Professional{}.Performs([]uint{1, 2, 3}))
}

func TestProfessionalBlockedOn(t *testing.T) {
	p := Professional{Unavailable: []UnavailableWindow{
		{Weekday: 4, StartTime: "14:00", EndTime: "16:00"},
		{Weekday: 4, StartTime: "17:00", EndTime: "16:00"},
		{Weekday: 5, StartTime: "09:00", EndTime: "10:00"},
	}}

	assert.Equal(t, []schedule.Interval{{Start: 840, End: 960}}, p.BlockedOn(4))
	assert.Empty(t, p.BlockedOn(1))
}
