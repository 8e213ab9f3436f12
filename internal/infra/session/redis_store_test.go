package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// No redis runs in unit tests; an unreachable address must surface as a
// transport error, never as a missing session.
func TestUnreachableRedisIsNotNotFound(t *testing.T) {
	client := NewClient("127.0.0.1:1", "", 0)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store := NewRedisStore(client, time.Minute, time.Minute)

	_, err := store.Load(ctx, "abc")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	_, reserved, err := store.Reserve(ctx, "key")
	assert.Error(t, err)
	assert.False(t, reserved)
}
