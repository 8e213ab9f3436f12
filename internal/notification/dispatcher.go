package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const storeTimeout = 5 * time.Second

type Dispatcher struct {
	sink   Sink
	logger *zap.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, size int, logger *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if err := d.sink.Store(ctx, ev); err != nil {
			d.logger.Error("notification store failed",
				zap.Uint("barbershop_id", ev.BarbershopID),
				zap.String("category", ev.Category),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Notify never blocks: a full queue drops the event.
func (d *Dispatcher) Notify(_ context.Context, ev Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

var _ Notifier = (*Dispatcher)(nil)
