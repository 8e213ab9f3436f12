package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CompleteAppointment closes a served appointment and books its revenue.
type CompleteAppointment struct {
	change  statusChange
	revenue domain.RevenueRecorder
	logger  *zap.Logger
}

func NewCompleteAppointment(
	store domain.AppointmentStore,
	revenue domain.RevenueRecorder,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *CompleteAppointment {
	return &CompleteAppointment{
		change: statusChange{
			store:  store,
			audit:  audit,
			now:    time.Now,
			action: "appointment_completed",
			apply:  domain.Complete,
		},
		revenue: revenue,
		logger:  logger,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.change.run(ctx, barbershopID, userID, appointmentID)
	if err != nil {
		return nil, err
	}

	// the appointment is already completed; a ledger failure is reported
	// to the operator, not to the caller
	if err := uc.revenue.RecordRevenue(ctx, &models.Revenue{
		BarbershopID:  barbershopID,
		AppointmentID: ap.ID,
		Amount:        ap.Price,
		Description:   fmt.Sprintf("Atendimento: %s", strings.Join(ap.ServiceNames, ", ")),
		Date:          ap.Date,
	}); err != nil {
		uc.logger.Error("revenue not recorded",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}

	return ap, nil
}
