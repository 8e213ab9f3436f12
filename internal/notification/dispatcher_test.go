package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Store(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, 10, zap.NewNop())

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, d.Notify(context.Background(), Event{BarbershopID: 1, Title: title}))
	}
	d.Close()

	require.Len(t, sink.events, 3)
	assert.Equal(t, "a", sink.events[0].Title)
	assert.Equal(t, "c", sink.events[2].Title)
}

func TestDispatcherSwallowsSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, 1, zap.NewNop())

	assert.NoError(t, d.Notify(context.Background(), Event{Title: "x"}))
	d.Close()
	assert.Empty(t, sink.events)
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Store(context.Context, Event) error {
	<-s.release
	return nil
}

func TestDispatcherReportsFullQueue(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(sink, 1, zap.NewNop())

	var full bool
	for i := 0; i < 5; i++ {
		if errors.Is(d.Notify(context.Background(), Event{}), ErrQueueFull) {
			full = true
			break
		}
	}
	assert.True(t, full)

	close(sink.release)
	d.Close()
}

func TestNotifyAfterCloseIsRejected(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, 4, zap.NewNop())
	d.Close()

	var err error
	assert.NotPanics(t, func() { err = d.Notify(context.Background(), Event{Title: "late"}) })
	assert.ErrorIs(t, err, ErrClosed)
	assert.Empty(t, sink.events)

	assert.NotPanics(t, d.Close)
}

func TestNotifyRacingClose(t *testing.T) {
	d := NewDispatcher(&memorySink{}, 8, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = d.Notify(context.Background(), Event{})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
