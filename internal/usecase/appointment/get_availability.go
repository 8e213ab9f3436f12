package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	BarbershopID   uint
	Date           string
	Items          []catalog.ItemRef
	ProfessionalID *uint
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	catalog domain.CatalogReader
	store   domain.AppointmentStore
	now     func() time.Time
}

func NewGetAvailability(
	reader domain.CatalogReader,
	store domain.AppointmentStore,
) *GetAvailability {
	return &GetAvailability{
		catalog: reader,
		store:   store,
		now:     time.Now,
	}
}

// WithClock replaces the wall clock used for the minimum advance filter.
func (uc *GetAvailability) WithClock(now func() time.Time) *GetAvailability {
	uc.now = now
	return uc
}

// plan is the fresh view of a selection against the tenant's data.
type plan struct {
	shop         *models.Barbershop
	totals       catalog.Totals
	professional *catalog.Professional
	scope        domain.Scope
	duration     int
	slots        []string // before the minimum advance filter
}

// ======================================================
// EXECUTE
// ======================================================

// Execute lists the start times still bookable on the date. An empty list
// is a normal answer.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]string, error) {

	p, err := uc.plan(ctx, in)
	if err != nil {
		return nil, err
	}

	minAdvance := p.shop.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	return notBefore(p.slots, in.Date, p.shop.Timezone, uc.now().Add(time.Duration(minAdvance)*time.Minute)), nil
}

// ForShop adapts the use case to the booking session's slot finder.
func (uc *GetAvailability) ForShop(barbershopID uint) booking.SlotFinder {
	return shopFinder{uc: uc, barbershopID: barbershopID}
}

type shopFinder struct {
	uc           *GetAvailability
	barbershopID uint
}

func (f shopFinder) AvailableSlots(
	ctx context.Context,
	date string,
	items []catalog.ItemRef,
	professionalID *uint,
) ([]string, error) {
	return f.uc.Execute(ctx, AvailabilityInput{
		BarbershopID:   f.barbershopID,
		Date:           date,
		Items:          items,
		ProfessionalID: professionalID,
	})
}

func (f shopFinder) CheckSelection(
	ctx context.Context,
	items []catalog.ItemRef,
	professionalID *uint,
) error {
	if len(items) == 0 {
		return &booking.ValidationError{Step: booking.StepServices, Field: "items", Reason: "required"}
	}

	_, _, err := f.uc.selection(ctx, f.barbershopID, items, professionalID)

	// unknown items surface to the visitor as a step 1 field error
	for _, code := range []string{"item_not_found", "invalid_item_kind"} {
		if httperr.IsBusiness(err, code) {
			return &booking.ValidationError{Step: booking.StepServices, Field: "items", Reason: code}
		}
	}
	return err
}

// ======================================================
// INTERNALS
// ======================================================

func (uc *GetAvailability) plan(ctx context.Context, in AvailabilityInput) (*plan, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia
	// --------------------------------------------------
	shop, err := uc.catalog.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, lookupErr(err, "barbershop_not_found", "get_barbershop")
	}

	if len(in.Items) == 0 {
		return nil, &booking.ValidationError{Step: booking.StepServices, Field: "items", Reason: "required"}
	}

	// --------------------------------------------------
	// 2️⃣ Catálogo e profissional
	// --------------------------------------------------
	totals, prof, err := uc.selection(ctx, shop.ID, in.Items, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	scope := domain.Scope{
		Professional: in.ProfessionalID,
		Policy:       domain.ParsePolicy(shop.NoPreferencePolicy),
	}
	duration := domain.EffectiveDuration(totals.DurationMin, shop.Interval())

	// --------------------------------------------------
	// 3️⃣ Grade do dia
	// --------------------------------------------------
	slots, err := uc.daySlots(ctx, shop, in.Date, duration, prof, scope)
	if err != nil {
		return nil, err
	}

	return &plan{
		shop:         shop,
		totals:       totals,
		professional: prof,
		scope:        scope,
		duration:     duration,
		slots:        slots,
	}, nil
}

// selection resolves the items against the active catalog and loads the
// chosen professional, who must perform every selected service.
func (uc *GetAvailability) selection(
	ctx context.Context,
	barbershopID uint,
	items []catalog.ItemRef,
	professionalID *uint,
) (catalog.Totals, *catalog.Professional, error) {

	products, err := uc.catalog.ListActiveProducts(ctx, barbershopID)
	if err != nil {
		return catalog.Totals{}, nil, domain.Persistence("list_products", err)
	}
	combos, err := uc.catalog.ListActiveCombos(ctx, barbershopID)
	if err != nil {
		return catalog.Totals{}, nil, domain.Persistence("list_combos", err)
	}

	idx := indexFromModels(products, combos)
	totals, err := idx.Resolve(items)
	if err != nil {
		return catalog.Totals{}, nil, err
	}

	if professionalID == nil {
		return totals, nil, nil
	}

	rec, err := uc.catalog.GetProfessional(ctx, barbershopID, *professionalID)
	if errors.Is(err, domain.ErrNotFound) {
		return catalog.Totals{}, nil, &booking.ValidationError{Step: booking.StepProfessional, Field: "professional_id", Reason: "not_found"}
	}
	if err != nil {
		return catalog.Totals{}, nil, domain.Persistence("get_professional", err)
	}

	prof := professionalFromRecord(rec)
	if !prof.Performs(idx.ServiceIDsOf(items)) {
		return catalog.Totals{}, nil, &booking.ValidationError{Step: booking.StepProfessional, Field: "professional_id", Reason: "does_not_perform"}
	}
	return totals, prof, nil
}

// daySlots computes the raw slots of a date for a duration and scope.
func (uc *GetAvailability) daySlots(
	ctx context.Context,
	shop *models.Barbershop,
	date string,
	duration int,
	prof *catalog.Professional,
	scope domain.Scope,
) ([]string, error) {

	hours, err := uc.catalog.ListWorkingHours(ctx, shop.ID)
	if err != nil {
		return nil, domain.Persistence("list_working_hours", err)
	}

	window, err := schedule.GetOpenWindow(date, weekFromModels(hours))
	if errors.Is(err, schedule.ErrInvalidDate) {
		return nil, &booking.ValidationError{Step: booking.StepDateTime, Field: "date", Reason: "invalid"}
	}
	if err != nil {
		return nil, err
	}
	if window.Closed {
		return []string{}, nil
	}

	var blocked []schedule.Interval
	if prof != nil {
		weekday, _ := schedule.Weekday(date)
		blocked = prof.BlockedOn(weekday)
	}

	existing, err := uc.store.ListAppointmentsForDate(ctx, shop.ID, date)
	if err != nil {
		return nil, domain.Persistence("list_appointments", err)
	}

	return domain.ComputeSlots(domain.SlotQuery{
		Date:        date,
		Window:      window,
		Existing:    domain.ToBookedList(existing),
		DurationMin: duration,
		IntervalMin: shop.Interval(),
		Scope:       scope,
		Blocked:     blocked,
	}), nil
}

// notBefore drops slots that start before earliest, read in the shop's
// timezone.
func notBefore(slots []string, date, tz string, earliest time.Time) []string {
	loc := timezone.Location(tz)

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		start, err := time.ParseInLocation(schedule.DateLayout+" "+schedule.ClockLayout, date+" "+s, loc)
		if err != nil || start.Before(earliest) {
			continue
		}
		out = append(out, s)
	}
	return out
}
