package appointment

import (
	"errors"
	"fmt"
)

// ErrSlotNoLongerAvailable means another booking took the slot between
// display and commit. Callers recompute availability and re-prompt.
var ErrSlotNoLongerAvailable = errors.New("slot_no_longer_available")

// ErrNotFound is returned by stores for a missing record of the tenant.
var ErrNotFound = errors.New("not_found")

// PersistenceError wraps a record store failure. Writes are never retried
// by the engine.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure on %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
