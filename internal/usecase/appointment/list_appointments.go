package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListAppointments struct {
	store domain.AppointmentStore
}

func NewListAppointments(store domain.AppointmentStore) *ListAppointments {
	return &ListAppointments{store: store}
}

// ByDate lists one day's agenda, optionally for a single professional.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	professionalID *uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.list(ctx, barbershopID, professionalID, date, day.AddDate(0, 0, 1).Format(schedule.DateLayout))
}

// ByMonth lists a calendar month.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	professionalID *uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, barbershopID, professionalID, start.Format(schedule.DateLayout), end.Format(schedule.DateLayout))
}

func (uc *ListAppointments) list(
	ctx context.Context,
	barbershopID uint,
	professionalID *uint,
	from string,
	to string,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.store.ListAppointmentsForPeriod(ctx, barbershopID, professionalID, from, to)
	if err != nil {
		return nil, domain.Persistence("list_appointments", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap))
	}
	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	out := dto.AppointmentListDTO{
		ID:             ap.ID,
		Date:           ap.Date,
		StartTime:      ap.StartTime,
		EndTime:        endClock(ap.StartTime, ap.DurationMin),
		Status:         ap.Status,
		Origin:         ap.Origin,
		ClientName:     ap.ClientName,
		ClientPhone:    ap.ClientPhone,
		ServiceNames:   ap.ServiceNames,
		Price:          ap.Price.StringFixed(2),
		ProfessionalID: ap.ProfessionalID,
	}
	if ap.Professional != nil {
		out.ProfessionalName = ap.Professional.Name
	}
	return out
}

func endClock(start string, durationMin int) string {
	m, err := schedule.ParseClock(start)
	if err != nil {
		return ""
	}
	end := m + durationMin
	if end >= 24*60 {
		return fmt.Sprintf("%02d:%02d", end/60, end%60)
	}
	return schedule.FormatClock(end)
}
