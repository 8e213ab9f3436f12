package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ConfirmAppointment struct {
	change statusChange
}

func NewConfirmAppointment(
	store domain.AppointmentStore,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		change: statusChange{
			store:  store,
			audit:  audit,
			now:    time.Now,
			action: "appointment_confirmed",
			apply:  domain.Confirm,
		},
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.change.run(ctx, barbershopID, userID, appointmentID)
}
