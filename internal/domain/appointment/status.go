package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Origin of an appointment. Public bookings are pre-confirmed, staff
// bookings start pending.
type Origin string

const (
	OriginPublic Origin = "public"
	OriginStaff  Origin = "staff"
)

func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// CanConfirm define se um agendamento pendente pode ser confirmado
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule only allows edits while the appointment is still ahead.
func CanReschedule(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus(origin Origin) Status {
	if origin == OriginPublic {
		return StatusConfirmed
	}
	return StatusPending
}
