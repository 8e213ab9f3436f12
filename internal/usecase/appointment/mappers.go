package appointment

import (
	"errors"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// Records → domain values
// ======================================================

func weekFromModels(hours []models.WorkingHours) schedule.Week {
	week := make(schedule.Week, len(hours))
	for _, h := range hours {
		week[h.Weekday] = schedule.Day{
			Weekday:          h.Weekday,
			IsOpen:           h.Active,
			StartTime:        h.StartTime,
			EndTime:          h.EndTime,
			HasLunchBreak:    h.HasLunchBreak,
			LunchStart:       h.LunchStart,
			LunchDurationMin: h.LunchDurationMin,
		}
	}
	return week
}

func indexFromModels(products []models.BarberProduct, combos []models.BarberCombo) *catalog.Index {
	services := make([]catalog.Service, 0, len(products))
	for _, p := range products {
		services = append(services, catalog.Service{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			PromoPrice:  p.PromoPrice,
			DurationMin: p.DurationMin,
			Active:      p.Active,
		})
	}

	out := make([]catalog.Combo, 0, len(combos))
	for _, c := range combos {
		ids := make([]uint, 0, len(c.Products))
		for _, p := range c.Products {
			ids = append(ids, p.ID)
		}
		out = append(out, catalog.Combo{
			ID:          c.ID,
			Name:        c.Name,
			ServiceIDs:  ids,
			Price:       c.Price,
			PromoPrice:  c.PromoPrice,
			DurationMin: c.DurationMin,
			Active:      c.Active,
		})
	}

	return catalog.NewIndex(services, out)
}

func professionalFromRecord(rec *domain.ProfessionalRecord) *catalog.Professional {
	p := &catalog.Professional{
		ID:   rec.User.ID,
		Name: rec.User.Name,
	}
	for _, ex := range rec.Excluded {
		p.ExcludedServiceIDs = append(p.ExcludedServiceIDs, ex.BarberProductID)
	}
	for _, w := range rec.Unavailable {
		p.Unavailable = append(p.Unavailable, catalog.UnavailableWindow{
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	return p
}

// ======================================================
// Error helpers
// ======================================================

// lookupErr turns a missing record into a business code and anything else
// into a persistence failure.
func lookupErr(err error, code, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return domain.Persistence(op, err)
}
