package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus(OriginPublic))
	assert.Equal(t, StatusPending, InitialStatus(OriginStaff))
}

func TestLifecycle(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)

	err := Confirm(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	assert.True(t, httperr.IsBusiness(Cancel(ap, now), "invalid_state"))
}

func TestCancelFromPending(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Cancel(ap, time.Now()))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.NotNil(t, ap.CancelledAt)
	assert.Error(t, Complete(ap, time.Now()))
}

func TestToBooked(t *testing.T) {
	ap := models.Appointment{ID: 3, Date: "2026-10-15", StartTime: "09:00", DurationMin: 40, Status: "confirmed", ProfessionalID: uintPtr(2)}
	b := ToBooked(ap)
	assert.Equal(t, Booked{ID: 3, Date: "2026-10-15", StartTime: "09:00", DurationMin: 40, Status: StatusConfirmed, ProfessionalID: uintPtr(2)}, b)
	assert.Equal(t, uint(2), ProfessionalSlot(ap.ProfessionalID))
	assert.Equal(t, uint(0), ProfessionalSlot(nil))
}
