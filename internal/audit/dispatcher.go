package audit

import (
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Store persists audit events.
type Store interface {
	Log(ev Event) error
}

type Dispatcher struct {
	store  Store
	logger *zap.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(store Store, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.store.Log(ev); err != nil {
			d.logger.Error("audit store failed",
				zap.String("action", ev.Action),
				zap.Uint("barbershop_id", ev.BarbershopID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch is safe on a nil or closed dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.logger.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
