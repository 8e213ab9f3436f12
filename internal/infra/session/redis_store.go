package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const (
	sessionPrefix     = "booking:session:"
	idempotencyPrefix = "booking:idem:"

	idempotencyPending = "pending"
)

var (
	ErrNotFound = errors.New("booking session not found")
	// ErrInFlight means a request with the same idempotency key is still running.
	ErrInFlight = errors.New("idempotent request in flight")
)

// RedisStore keeps in-progress booking sessions and confirm idempotency keys.
// Sessions expire after ttl of inactivity.
type RedisStore struct {
	client         *redis.Client
	ttl            time.Duration
	idempotencyTTL time.Duration
}

func NewRedisStore(client *redis.Client, ttl, idempotencyTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, idempotencyTTL: idempotencyTTL}
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// ===============================
// Sessions
// ===============================

func (s *RedisStore) Save(ctx context.Context, st booking.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+st.ID, b, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (booking.State, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return booking.State{}, ErrNotFound
	}
	if err != nil {
		return booking.State{}, err
	}

	var st booking.State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return booking.State{}, err
	}
	return st, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

// ===============================
// Idempotency
// ===============================

// Reserve claims key for a new request. When the key already completed it
// returns the appointment id it produced and reserved=false.
func (s *RedisStore) Reserve(ctx context.Context, key string) (appointmentID uint, reserved bool, err error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, idempotencyPending, s.idempotencyTTL).Result()
	if err != nil {
		return 0, false, err
	}
	if ok {
		return 0, true, nil
	}

	val, err := s.client.Get(ctx, idempotencyPrefix+key).Result()
	if err == redis.Nil {
		// expired between the two calls; try once more
		return s.Reserve(ctx, key)
	}
	if err != nil {
		return 0, false, err
	}
	if val == idempotencyPending {
		return 0, false, ErrInFlight
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, appointmentID uint) error {
	return s.client.Set(ctx, idempotencyPrefix+key, strconv.FormatUint(uint64(appointmentID), 10), s.idempotencyTTL).Err()
}

// Release forgets a key whose request failed so the client may retry.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}
