package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CatalogReader lists a tenant's bookable catalog and agenda rules.
// Single-record lookups return ErrNotFound when the record does not exist.
type CatalogReader interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)

	ListActiveProducts(ctx context.Context, barbershopID uint) ([]models.BarberProduct, error)
	ListActiveCombos(ctx context.Context, barbershopID uint) ([]models.BarberCombo, error)
	ListProfessionals(ctx context.Context, barbershopID uint) ([]models.User, error)
	GetProfessional(ctx context.Context, barbershopID, professionalID uint) (*ProfessionalRecord, error)
	// GetOwner returns the tenant's active owner account.
	GetOwner(ctx context.Context, barbershopID uint) (*models.User, error)

	ListWorkingHours(ctx context.Context, barbershopID uint) ([]models.WorkingHours, error)
}

// ProfessionalRecord bundles a professional with their exceptions.
type ProfessionalRecord struct {
	User        models.User
	Excluded    []models.ProfessionalExcludedService
	Unavailable []models.ProfessionalUnavailability
}

// AppointmentStore is the record store of appointments. Single-record
// lookups return ErrNotFound when the record does not exist.
//
// CreateAppointment must be atomic with respect to the slot: it fails with
// ErrSlotNoLongerAvailable when a conflicting appointment exists at write
// time (uniqueness or exclusion violation included).
type AppointmentStore interface {
	// ListAppointmentsForDate excludes cancelled appointments.
	ListAppointmentsForDate(ctx context.Context, barbershopID uint, date string) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment, scope Scope) error

	GetAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	RescheduleAppointment(ctx context.Context, ap *models.Appointment, scope Scope) error

	ListAppointmentsForPeriod(ctx context.Context, barbershopID uint, professionalID *uint, from, to string) ([]models.Appointment, error)
}

// ClientDirectory keeps the tenant's client roster.
type ClientDirectory interface {
	GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error)
}

// RevenueRecorder receives the financial record of completed appointments.
type RevenueRecorder interface {
	RecordRevenue(ctx context.Context, rev *models.Revenue) error
}
