package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

// ======================================================
// Catalog
// ======================================================

type fakeCatalog struct {
	shop          models.Barbershop
	products      []models.BarberProduct
	combos        []models.BarberCombo
	professionals map[uint]*domain.ProfessionalRecord
	hours         []models.WorkingHours
	ownerErr      error
}

func (f *fakeCatalog) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != f.shop.ID {
		return nil, domain.ErrNotFound
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeCatalog) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	if slug != f.shop.Slug {
		return nil, domain.ErrNotFound
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeCatalog) ListActiveProducts(context.Context, uint) ([]models.BarberProduct, error) {
	return f.products, nil
}

func (f *fakeCatalog) ListActiveCombos(context.Context, uint) ([]models.BarberCombo, error) {
	return f.combos, nil
}

func (f *fakeCatalog) ListProfessionals(context.Context, uint) ([]models.User, error) {
	out := make([]models.User, 0, len(f.professionals))
	for _, p := range f.professionals {
		out = append(out, p.User)
	}
	return out, nil
}

func (f *fakeCatalog) GetProfessional(_ context.Context, _ uint, id uint) (*domain.ProfessionalRecord, error) {
	rec, ok := f.professionals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (f *fakeCatalog) GetOwner(_ context.Context, _ uint) (*models.User, error) {
	if f.ownerErr != nil {
		return nil, f.ownerErr
	}
	for _, p := range f.professionals {
		if p.User.Role == models.RoleOwner {
			owner := p.User
			return &owner, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalog) ListWorkingHours(context.Context, uint) ([]models.WorkingHours, error) {
	return f.hours, nil
}

// ======================================================
// Appointment store
// ======================================================

// fakeStore applies the same atomic create contract as the gorm store:
// the conflict check and the insert happen under one lock.
type fakeStore struct {
	mu        sync.Mutex
	seq       uint
	apps      map[uint]*models.Appointment
	err       error
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{apps: map[uint]*models.Appointment{}}
}

func (s *fakeStore) seed(ap models.Appointment) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	ap.ID = s.seq
	s.apps[ap.ID] = &ap
	return ap.ID
}

func (s *fakeStore) activeForDate(shopID uint, date string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.apps {
		if ap.BarbershopID == shopID && ap.Date == date && ap.Status != string(domain.StatusCancelled) {
			out = append(out, *ap)
		}
	}
	return out
}

func (s *fakeStore) ListAppointmentsForDate(_ context.Context, shopID uint, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.activeForDate(shopID, date), nil
}

func (s *fakeStore) CreateAppointment(_ context.Context, ap *models.Appointment, scope domain.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, clash := domain.FindConflict(
		domain.ToBookedList(s.activeForDate(ap.BarbershopID, ap.Date)),
		ap.Date, ap.StartTime, ap.DurationMin, scope,
	); clash {
		return domain.ErrSlotNoLongerAvailable
	}
	s.seq++
	ap.ID = s.seq
	cp := *ap
	s.apps[ap.ID] = &cp
	return nil
}

func (s *fakeStore) GetAppointment(_ context.Context, shopID, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.apps[id]
	if !ok || ap.BarbershopID != shopID {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (s *fakeStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := *ap
	s.apps[ap.ID] = &cp
	return nil
}

func (s *fakeStore) RescheduleAppointment(_ context.Context, ap *models.Appointment, scope domain.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, clash := domain.FindConflict(
		domain.ToBookedList(s.activeForDate(ap.BarbershopID, ap.Date)),
		ap.Date, ap.StartTime, ap.DurationMin, scope,
	); clash {
		return domain.ErrSlotNoLongerAvailable
	}
	cp := *ap
	s.apps[ap.ID] = &cp
	return nil
}

func (s *fakeStore) ListAppointmentsForPeriod(_ context.Context, shopID uint, professionalID *uint, from, to string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for id := uint(1); id <= s.seq; id++ {
		ap, ok := s.apps[id]
		if !ok || ap.BarbershopID != shopID || ap.Date < from || ap.Date >= to {
			continue
		}
		if professionalID != nil && (ap.ProfessionalID == nil || *ap.ProfessionalID != *professionalID) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

// ======================================================
// Collaborators
// ======================================================

type fakeClients struct {
	created []models.Client
}

func (f *fakeClients) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	for i := range f.created {
		if f.created[i].Phone == phone {
			return &f.created[i], nil
		}
	}
	f.created = append(f.created, models.Client{
		ID:           uint(len(f.created) + 1),
		BarbershopID: shopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	})
	return &f.created[len(f.created)-1], nil
}

type fakeRevenue struct {
	records []models.Revenue
	err     error
}

func (f *fakeRevenue) RecordRevenue(_ context.Context, rev *models.Revenue) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *rev)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification.Event
	err    error
}

func (f *fakeNotifier) Notify(_ context.Context, ev notification.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

var errStoreDown = errors.New("connection refused")

// ======================================================
// Fixture
// ======================================================

const shopID uint = 1

// 2026-10-15 is a Thursday; the clock is set well before it.
func fixedNow() time.Time {
	return time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func newFixture() *fakeCatalog {
	week := make([]models.WorkingHours, 0, 7)
	for wd := 1; wd <= 6; wd++ {
		week = append(week, models.WorkingHours{
			BarbershopID:     shopID,
			Weekday:          wd,
			Active:           true,
			StartTime:        "09:00",
			EndTime:          "18:00",
			HasLunchBreak:    true,
			LunchStart:       "12:00",
			LunchDurationMin: 60,
		})
	}

	barba := models.BarberProduct{ID: 2, BarbershopID: shopID, Name: "Barba", DurationMin: 30, Price: decimal.NewFromInt(30), PromoPrice: decimal.NewNullDecimal(decimal.NewFromInt(25)), Active: true}
	corte := models.BarberProduct{ID: 1, BarbershopID: shopID, Name: "Corte", DurationMin: 30, Price: decimal.NewFromInt(40), Active: true}

	return &fakeCatalog{
		shop: models.Barbershop{
			ID:                  shopID,
			Slug:                "navalha",
			Timezone:            "UTC",
			SlotIntervalMinutes: 30,
			NoPreferencePolicy:  models.NoPreferenceBlocksAll,
		},
		products: []models.BarberProduct{
			corte,
			barba,
			{ID: 3, BarbershopID: shopID, Name: "Pigmentação", DurationMin: 60, Price: decimal.NewFromInt(80), Active: true},
		},
		combos: []models.BarberCombo{
			{ID: 10, BarbershopID: shopID, Name: "Corte + Barba", Products: []models.BarberProduct{corte, barba}, DurationMin: 60, Price: decimal.NewFromInt(60), Active: true},
		},
		professionals: map[uint]*domain.ProfessionalRecord{
			7: {
				User:     models.User{ID: 7, BarbershopID: shopID, Name: "Rafael", Role: models.RoleBarber, Active: true},
				Excluded: []models.ProfessionalExcludedService{{UserID: 7, BarberProductID: 3}},
				Unavailable: []models.ProfessionalUnavailability{
					{UserID: 7, Weekday: 4, StartTime: "16:00", EndTime: "18:00"},
				},
			},
			8: {User: models.User{ID: 8, BarbershopID: shopID, Name: "Bruno", Role: models.RoleOwner, Active: true}},
		},
		hours: week,
	}
}
