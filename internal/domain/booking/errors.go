package booking

import (
	"errors"
	"fmt"
)

var ErrTerminalStep = errors.New("booking session is at its last step")

// ValidationError reports step data that is missing or malformed.
// Recoverable: the UI re-prompts for Field.
type ValidationError struct {
	Step   Step   `json:"step"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s %s", e.Step, e.Field, e.Reason)
}

func invalid(step Step, field, reason string) *ValidationError {
	return &ValidationError{Step: step, Field: field, Reason: reason}
}
