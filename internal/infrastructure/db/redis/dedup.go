package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// BookingDedup remembers Idempotency-Key values seen on booking creation.
// Key format: dedup:booking:<user_id>:<idempotency_key>
type BookingDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookingDedup creates a BookingDedup wrapping the given Redis client.
func NewBookingDedup(client *redis.Client) *BookingDedup {
	return &BookingDedup{client: client, ttl: dedupTTL}
}

// Reserve claims the key with SET NX; false means another request holds it.
// Claims expire after the dedup TTL.
func (d *BookingDedup) Reserve(ctx context.Context, userID, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, Key(userID, key), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup reserve: %w", err)
	}
	return ok, nil
}

// Release deletes a claim so the client can retry with the same key.
func (d *BookingDedup) Release(ctx context.Context, userID, key string) error {
	if err := d.client.Del(ctx, Key(userID, key)).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}

// Key builds the redis key for a caller-scoped idempotency key.
func Key(userID, key string) string {
	return fmt.Sprintf("dedup:booking:%s:%s", userID, key)
}
