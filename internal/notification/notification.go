package notification

import (
	"context"
	"errors"
)

const CategoryAppointment = "appointment"

// ErrQueueFull is returned when the dispatcher cannot accept more events.
var ErrQueueFull = errors.New("notification queue full")

// ErrClosed is returned for events sent after the dispatcher was closed.
var ErrClosed = errors.New("notification dispatcher closed")

type Event struct {
	BarbershopID uint
	RecipientID  *uint
	Title        string
	Description  string
	Category     string
}

// Notifier accepts events for delivery. Delivery itself is asynchronous;
// a nil error only means the event was accepted.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Sink persists a notification for the recipient's inbox.
type Sink interface {
	Store(ctx context.Context, ev Event) error
}
