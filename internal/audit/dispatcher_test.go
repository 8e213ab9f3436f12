package audit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu     sync.Mutex
	events []Event
}

func (s *memoryStore) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func TestDispatchAndDrain(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(store, zap.NewNop())

	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment"})
	d.Dispatch(Event{Action: "appointment_cancelled", Entity: "appointment"})
	d.Close()

	assert.Len(t, store.events, 2)
	assert.Equal(t, "appointment_cancelled", store.events[1].Action)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(store, zap.NewNop())
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })
	assert.Empty(t, store.events)
	assert.NotPanics(t, d.Close)
}
