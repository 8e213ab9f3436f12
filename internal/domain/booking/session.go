package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

type Step int

const (
	StepServices Step = iota + 1
	StepProfessional
	StepDateTime
	StepContact
	StepReview
)

// SlotFinder computes the bookable start times for a selection.
//
// CheckSelection reports a *ValidationError when an item is unknown or
// inactive, or when the professional is unknown or excludes a selected
// service.
type SlotFinder interface {
	AvailableSlots(ctx context.Context, date string, items []catalog.ItemRef, professionalID *uint) ([]string, error)
	CheckSelection(ctx context.Context, items []catalog.ItemRef, professionalID *uint) error
}

// State is the serialisable part of a session.
type State struct {
	ID             string            `json:"id"`
	BarbershopID   uint              `json:"barbershop_id"`
	Step           Step              `json:"step"`
	Items          []catalog.ItemRef `json:"items"`
	ProfessionalID *uint             `json:"professional_id"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	// Slots is the latest availability result for Items, ProfessionalID and Date.
	Slots       []string `json:"slots"`
	ClientName  string   `json:"client_name"`
	ClientPhone string   `json:"client_phone"`
	// TimeCleared tells the UI a previously picked time was dropped.
	TimeCleared bool `json:"time_cleared"`
	// Rejected is the latest catalog check failure of the selection.
	Rejected  *ValidationError `json:"rejected,omitempty"`
	LastError string           `json:"last_error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Session is one visitor's in-progress public booking. It is not safe for
// concurrent use.
type Session struct {
	st     State
	finder SlotFinder
}

func New(id string, barbershopID uint, finder SlotFinder) *Session {
	return &Session{
		st: State{
			ID:           id,
			BarbershopID: barbershopID,
			Step:         StepServices,
			CreatedAt:    time.Now().UTC(),
		},
		finder: finder,
	}
}

func Restore(st State, finder SlotFinder) *Session {
	if st.Step < StepServices || st.Step > StepReview {
		st.Step = StepServices
	}
	return &Session{st: st, finder: finder}
}

// State returns a copy safe to serialise.
func (s *Session) State() State {
	st := s.st
	st.Items = append([]catalog.ItemRef(nil), s.st.Items...)
	st.Slots = append([]string(nil), s.st.Slots...)
	return st
}

func (s *Session) Step() Step { return s.st.Step }

// ===============================
// Selections
// ===============================

func (s *Session) SelectItems(ctx context.Context, items []catalog.ItemRef) error {
	if err := s.requireStep(StepServices, "items"); err != nil {
		return err
	}

	seen := make(map[catalog.ItemRef]struct{}, len(items))
	selected := make([]catalog.ItemRef, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		selected = append(selected, it)
	}

	s.st.Items = selected
	if err := s.checkSelection(ctx); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// SetProfessional picks a professional; nil means "no preference".
func (s *Session) SetProfessional(ctx context.Context, professionalID *uint) error {
	if err := s.requireStep(StepProfessional, "professional"); err != nil {
		return err
	}
	s.st.ProfessionalID = professionalID
	if err := s.checkSelection(ctx); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *Session) SetDate(ctx context.Context, date string) error {
	if err := s.requireStep(StepDateTime, "date"); err != nil {
		return err
	}
	if _, err := schedule.Weekday(date); err != nil {
		return s.fail(invalid(StepDateTime, "date", "invalid"))
	}
	s.st.Date = date
	return s.refresh(ctx)
}

// SetTime only accepts a member of the latest availability result.
func (s *Session) SetTime(clock string) error {
	if err := s.requireStep(StepDateTime, "time"); err != nil {
		return err
	}
	if s.st.Date == "" {
		return s.fail(invalid(StepDateTime, "date", "required"))
	}
	if !appointment.Contains(s.st.Slots, clock) {
		return s.fail(invalid(StepDateTime, "time", "unavailable"))
	}
	s.st.Time = clock
	s.st.TimeCleared = false
	s.st.LastError = ""
	return nil
}

func (s *Session) SetContact(name, phone string) error {
	if err := s.requireStep(StepContact, "contact"); err != nil {
		return err
	}
	s.st.ClientName = strings.TrimSpace(name)
	s.st.ClientPhone = NormalizePhone(phone)
	if err := s.Validate(StepContact); err != nil {
		return s.fail(err)
	}
	s.st.LastError = ""
	return nil
}

// ===============================
// Navigation
// ===============================

func (s *Session) NextStep(ctx context.Context) error {
	if s.st.Step == StepReview {
		return ErrTerminalStep
	}
	if s.st.Step <= StepProfessional {
		if err := s.checkSelection(ctx); err != nil {
			return err
		}
	}
	if err := s.Validate(s.st.Step); err != nil {
		return s.fail(err)
	}

	s.st.Step++
	s.st.LastError = ""

	if s.st.Step == StepDateTime {
		return s.refresh(ctx)
	}
	return nil
}

func (s *Session) PrevStep() {
	if s.st.Step > StepServices {
		s.st.Step--
	}
}

// CanAdvance evaluates the current step's predicate against the cached
// catalog check and availability result.
func (s *Session) CanAdvance() bool {
	if s.st.Step == StepReview {
		return false
	}
	return s.Validate(s.st.Step) == nil
}

// Validate checks the predicate guarding the exit of step.
func (s *Session) Validate(step Step) error {
	switch step {
	case StepServices:
		if len(s.st.Items) == 0 {
			return invalid(step, "items", "required")
		}
		if r := s.st.Rejected; r != nil && r.Step == StepServices {
			return r
		}
	case StepProfessional:
		if r := s.st.Rejected; r != nil && r.Step == StepProfessional {
			return r
		}
	case StepDateTime:
		if s.st.Date == "" {
			return invalid(step, "date", "required")
		}
		if s.st.Time == "" {
			return invalid(step, "time", "required")
		}
		if !appointment.Contains(s.st.Slots, s.st.Time) {
			return invalid(step, "time", "unavailable")
		}
	case StepContact:
		return ValidateContact(s.st.ClientName, s.st.ClientPhone)
	case StepReview:
		for st := StepServices; st < StepReview; st++ {
			if err := s.Validate(st); err != nil {
				return err
			}
		}
	default:
		return invalid(step, "step", "unknown")
	}
	return nil
}

// Revalidate recomputes availability from current data and re-checks every
// step. A time that vanished yields appointment.ErrSlotNoLongerAvailable.
func (s *Session) Revalidate(ctx context.Context) error {
	if s.st.Step != StepReview {
		return invalid(s.st.Step, "step", "not_ready")
	}

	if err := s.checkSelection(ctx); err != nil {
		return err
	}
	if s.st.Rejected != nil {
		return s.fail(s.st.Rejected)
	}
	picked := s.st.Time
	if err := s.refresh(ctx); err != nil {
		return err
	}
	if picked != "" && s.st.Time == "" {
		return appointment.ErrSlotNoLongerAvailable
	}
	return s.Validate(StepReview)
}

// ===============================
// Internals
// ===============================

func (s *Session) requireStep(step Step, field string) error {
	if s.st.Step != step {
		return s.fail(invalid(s.st.Step, field, "wrong_step"))
	}
	return nil
}

// checkSelection asks the finder whether items and professional still match
// the catalog. A rejection is kept in the state and returned only when it
// belongs to the current step, so a professional made invalid by a later item
// change is reported at step 2.
func (s *Session) checkSelection(ctx context.Context) error {
	if len(s.st.Items) == 0 {
		s.st.Rejected = nil
		return nil
	}

	err := s.finder.CheckSelection(ctx, s.st.Items, s.st.ProfessionalID)
	var vErr *ValidationError
	switch {
	case err == nil:
		s.st.Rejected = nil
		return nil
	case errors.As(err, &vErr):
		s.st.Rejected = vErr
		if vErr.Step == s.st.Step {
			return s.fail(vErr)
		}
		return nil
	default:
		return err
	}
}

// refresh re-runs availability for the current selection and drops a
// picked time that is no longer offered.
func (s *Session) refresh(ctx context.Context) error {
	if s.st.Date == "" || len(s.st.Items) == 0 {
		s.st.Slots = nil
		s.clearStaleTime()
		return nil
	}

	slots, err := s.finder.AvailableSlots(ctx, s.st.Date, s.st.Items, s.st.ProfessionalID)
	if err != nil {
		s.st.Slots = nil
		s.clearStaleTime()
		return err
	}

	s.st.Slots = slots
	s.clearStaleTime()
	return nil
}

func (s *Session) clearStaleTime() {
	if s.st.Time != "" && !appointment.Contains(s.st.Slots, s.st.Time) {
		s.st.Time = ""
		s.st.TimeCleared = true
	}
}

func (s *Session) fail(err error) error {
	s.st.LastError = err.Error()
	return err
}
