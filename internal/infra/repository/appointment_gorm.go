package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	barbershopID uint,
	date string,
) ([]models.Appointment, error) {
	return listActiveForDate(r.db.WithContext(ctx), barbershopID, date)
}

func listActiveForDate(tx *gorm.DB, barbershopID uint, date string) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := tx.
		Select("id", "professional_id", "date", "start_time", "duration_min", "status").
		Where(
			"barbershop_id = ? AND date = ? AND status <> ?",
			barbershopID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barbershopID uint,
	professionalID *uint,
	from string,
	to string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Professional").
		Where("barbershop_id = ? AND date >= ? AND date < ?", barbershopID, from, to)

	if professionalID != nil {
		q = q.Where("professional_id = ?", *professionalID)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// CreateAppointment serialises writers of the same shop/day with a
// transaction-scoped advisory lock, re-checks the slot and inserts.
// The partial unique index on the slot backs this up.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	scope domain.Scope,
) error {

	ap.ProfessionalSlot = domain.ProfessionalSlot(ap.ProfessionalID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDay(tx, ap.BarbershopID, ap.Date); err != nil {
			return err
		}
		if err := assertFree(tx, ap, scope); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	return translate(err)
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	scope domain.Scope,
) error {

	ap.ProfessionalSlot = domain.ProfessionalSlot(ap.ProfessionalID)
	scope.ExcludeID = ap.ID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDay(tx, ap.BarbershopID, ap.Date); err != nil {
			return err
		}
		if err := assertFree(tx, ap, scope); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})

	return translate(err)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Save(ap).Error)
}

// --------------------------------------------------
// Revenue
// --------------------------------------------------

func (r *AppointmentGormRepository) RecordRevenue(
	ctx context.Context,
	rev *models.Revenue,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}},
			DoNothing: true,
		}).
		Create(rev).Error
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	// a concurrent booking may register the same phone first
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(&client)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).
			Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
			First(&client).Error; err != nil {
			return nil, err
		}
	}

	return &client, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func lockDay(tx *gorm.DB, barbershopID uint, date string) error {
	key := fmt.Sprintf("appointments:%d:%s", barbershopID, date)
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func assertFree(tx *gorm.DB, ap *models.Appointment, scope domain.Scope) error {
	existing, err := listActiveForDate(tx, ap.BarbershopID, ap.Date)
	if err != nil {
		return err
	}

	if _, clash := domain.FindConflict(
		domain.ToBookedList(existing),
		ap.Date,
		ap.StartTime,
		ap.DurationMin,
		scope,
	); clash {
		return domain.ErrSlotNoLongerAvailable
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if httperr.IsExclusionConflict(err) {
		return domain.ErrSlotNoLongerAvailable
	}
	return err
}

// Compile-time checks
var (
	_ domain.AppointmentStore = (*AppointmentGormRepository)(nil)
	_ domain.RevenueRecorder  = (*AppointmentGormRepository)(nil)
	_ domain.ClientDirectory  = (*AppointmentGormRepository)(nil)
)
