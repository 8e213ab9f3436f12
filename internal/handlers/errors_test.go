package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

func TestRespondError(t *testing.T) {
	_, schedErr := schedule.GetOpenWindow("2026-10-15", schedule.Week{
		4: {Weekday: 4, IsOpen: true, StartTime: "18:00", EndTime: "09:00"},
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &booking.ValidationError{Field: "date", Reason: "invalid"}, http.StatusBadRequest, "validation_error"},
		{"lost slot", fmt.Errorf("commit: %w", domain.ErrSlotNoLongerAvailable), http.StatusConflict, "slot_no_longer_available"},
		{"bad schedule", schedErr, http.StatusUnprocessableEntity, "invalid_schedule"},
		{"store down", domain.Persistence("list", errors.New("boom")), http.StatusServiceUnavailable, "try_again"},
		{"missing shop", httperr.ErrBusiness("barbershop_not_found"), http.StatusNotFound, "barbershop_not_found"},
		{"unknown item", httperr.ErrBusiness("item_not_found"), http.StatusBadRequest, "item_not_found"},
		{"bad transition", httperr.ErrBusiness("invalid_state"), http.StatusBadRequest, "invalid_state"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, zap.NewNop(), tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error_code":"`+tc.code+`"`)
		})
	}
}

// staffRouter injects the authenticated identity the JWT middleware would set.
func staffRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(3))
		c.Set(middleware.ContextBarbershopID, uint(1))
		c.Next()
	})
	return r
}

func TestWorkingHoursRejectsInvalidWeekBeforeWriting(t *testing.T) {
	// a nil db proves nothing is written for rejected weeks
	h := NewWorkingHoursHandler(nil, nil, zap.NewNop())
	r := staffRouter()
	r.PUT("/wh", h.Update)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			"closing before opening",
			`{"days":[{"weekday":1,"active":true,"start_time":"18:00","end_time":"09:00"}]}`,
			http.StatusUnprocessableEntity, "invalid_schedule",
		},
		{
			"lunch outside hours",
			`{"days":[{"weekday":1,"active":true,"start_time":"09:00","end_time":"18:00","has_lunch_break":true,"lunch_start":"17:30","lunch_duration_min":60}]}`,
			http.StatusUnprocessableEntity, "invalid_schedule",
		},
		{
			"repeated weekday",
			`{"days":[{"weekday":1,"active":false},{"weekday":1,"active":false}]}`,
			http.StatusBadRequest, "duplicated_weekday",
		},
		{
			"weekday out of range",
			`{"days":[{"weekday":7,"active":false}]}`,
			http.StatusBadRequest, "invalid_request",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/wh", stringsReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestAppointmentHandlerRejectsBadParams(t *testing.T) {
	h := NewAppointmentHandler(nil, nil, nil, nil, nil, nil, zap.NewNop())
	r := staffRouter()
	r.GET("/appointments", h.ListByDate)
	r.GET("/appointments/month", h.ListByMonth)
	r.PATCH("/appointments/:id/cancel", h.Cancel)

	cases := []struct {
		path   string
		method string
		code   string
	}{
		{"/appointments", http.MethodGet, "missing_date"},
		{"/appointments?date=2026-10-20&professional_id=abc", http.MethodGet, "invalid_professional_id"},
		{"/appointments/month?year=2026", http.MethodGet, "missing_year_or_month"},
		{"/appointments/month?year=2026&month=13", http.MethodGet, "invalid_month"},
		{"/appointments/month?year=1999&month=1", http.MethodGet, "invalid_year"},
		{"/appointments/abc/cancel", http.MethodPatch, "invalid_id"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.code, tc.path)
	}
}

func TestValidPricing(t *testing.T) {
	assert.True(t, validPricing(decimalFrom("40"), nullDecimal(nil)))
	assert.True(t, validPricing(decimalFrom("40"), nullDecimal(ptrDecimal("35.50"))))
	assert.False(t, validPricing(decimalFrom("0"), nullDecimal(nil)))
	assert.False(t, validPricing(decimalFrom("40"), nullDecimal(ptrDecimal("45"))))
	assert.False(t, validPricing(decimalFrom("40"), nullDecimal(ptrDecimal("-1"))))
}

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }

func decimalFrom(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptrDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
