package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Bookable items
// ===============================

type Kind string

const (
	KindService Kind = "service"
	KindCombo   Kind = "combo"
)

type ItemRef struct {
	Kind Kind `json:"kind"`
	ID   uint `json:"id"`
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

type Service struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	PromoPrice  decimal.NullDecimal
	DurationMin int
	Active      bool
}

// A Combo is booked as a single item with its own price and duration,
// never as its member services.
type Combo struct {
	ID          uint
	Name        string
	ServiceIDs  []uint
	Price       decimal.Decimal
	PromoPrice  decimal.NullDecimal
	DurationMin int
	Active      bool
}

// effectivePrice is the promotional price when one is set.
func effectivePrice(price decimal.Decimal, promo decimal.NullDecimal) decimal.Decimal {
	if promo.Valid {
		return promo.Decimal
	}
	return price
}

// ===============================
// Index
// ===============================

// Index is a read-only view over a tenant's active catalog.
type Index struct {
	services map[uint]Service
	combos   map[uint]Combo
}

func NewIndex(services []Service, combos []Combo) *Index {
	idx := &Index{
		services: make(map[uint]Service, len(services)),
		combos:   make(map[uint]Combo, len(combos)),
	}
	for _, s := range services {
		if s.Active {
			idx.services[s.ID] = s
		}
	}
	for _, c := range combos {
		if c.Active {
			idx.combos[c.ID] = c
		}
	}
	return idx
}

func (idx *Index) Service(id uint) (Service, bool) {
	s, ok := idx.services[id]
	return s, ok
}

func (idx *Index) Combo(id uint) (Combo, bool) {
	c, ok := idx.combos[id]
	return c, ok
}

// Totals is the value snapshot of a selection at a given moment.
type Totals struct {
	DurationMin int
	Price       decimal.Decimal
	Names       []string
	ServiceIDs  []uint
	ComboIDs    []uint
}

// Resolve sums duration and effective price of the selected items.
// Unknown or inactive items fail with item_not_found.
func (idx *Index) Resolve(items []ItemRef) (Totals, error) {
	t := Totals{Price: decimal.Zero}

	for _, it := range items {
		switch it.Kind {
		case KindService:
			s, ok := idx.services[it.ID]
			if !ok {
				return Totals{}, httperr.ErrBusiness("item_not_found")
			}
			t.DurationMin += s.DurationMin
			t.Price = t.Price.Add(effectivePrice(s.Price, s.PromoPrice))
			t.Names = append(t.Names, s.Name)
			t.ServiceIDs = append(t.ServiceIDs, s.ID)

		case KindCombo:
			c, ok := idx.combos[it.ID]
			if !ok {
				return Totals{}, httperr.ErrBusiness("item_not_found")
			}
			t.DurationMin += c.DurationMin
			t.Price = t.Price.Add(effectivePrice(c.Price, c.PromoPrice))
			t.Names = append(t.Names, c.Name)
			t.ComboIDs = append(t.ComboIDs, c.ID)

		default:
			return Totals{}, httperr.ErrBusiness("invalid_item_kind")
		}
	}

	return t, nil
}

// ServiceIDsOf expands combos into their member services. Used for
// checking whether a professional performs everything selected.
func (idx *Index) ServiceIDsOf(items []ItemRef) []uint {
	var ids []uint
	for _, it := range items {
		switch it.Kind {
		case KindService:
			ids = append(ids, it.ID)
		case KindCombo:
			if c, ok := idx.combos[it.ID]; ok {
				ids = append(ids, c.ServiceIDs...)
			}
		}
	}
	return ids
}
