package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = time.Hour
	pendingMarker  = "pending"
)

// IdempotencyStore remembers which member an Idempotency-Key created.
// Key format: idem:socio:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Reserve claims key with a pending marker (expires after one hour).
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, string, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), pendingMarker, s.ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return true, "", nil
	}

	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) || id == pendingMarker {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return false, id, nil
}

// Remember overwrites the reservation with the created member id.
func (s *IdempotencyStore) Remember(ctx context.Context, key, socioID string) error {
	if err := s.client.Set(ctx, s.key(key), socioID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Release drops a reservation so the client can retry with the same key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:socio:" + key
}
