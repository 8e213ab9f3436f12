package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ProfessionalSlot is the value stored in the slot unique index.
func ProfessionalSlot(professionalID *uint) uint {
	if professionalID == nil {
		return 0
	}
	return *professionalID
}

// ToBooked projects a stored appointment onto the occupancy view used by
// the conflict predicate.
func ToBooked(ap models.Appointment) Booked {
	return Booked{
		ID:             ap.ID,
		Date:           ap.Date,
		StartTime:      ap.StartTime,
		DurationMin:    ap.DurationMin,
		Status:         Status(ap.Status),
		ProfessionalID: ap.ProfessionalID,
	}
}

func ToBookedList(aps []models.Appointment) []Booked {
	out := make([]Booked, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ToBooked(ap))
	}
	return out
}
