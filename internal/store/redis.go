package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiftdesk/shiftdesk/internal/viewed"
)

// viewedKeyPrefix namespaces viewed-state entries so the Redis database
// can be shared with other tools.
const viewedKeyPrefix = "shiftdesk:viewed:"

// RedisViewedStore keeps viewed-state in Redis instead of the local
// database. Pointing every device at the same Redis makes acknowledgments
// follow the user across devices.
type RedisViewedStore struct {
	client *redis.Client
}

// NewRedisViewedStore connects to Redis at addr and verifies the
// connection before returning.
func NewRedisViewedStore(addr, password string, db int) (*RedisViewedStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	return &RedisViewedStore{client: client}, nil
}

// Close releases the underlying Redis connection.
func (r *RedisViewedStore) Close() error {
	return r.client.Close()
}

// Get returns the stored watermark for key, with ok=false when absent.
func (r *RedisViewedStore) Get(ctx context.Context, key viewed.Key) (string, bool, error) {
	watermark, err := r.client.Get(ctx, viewedKeyPrefix+key.String()).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading viewed state: %w", err)
	}
	return watermark, true, nil
}

// Set stores the watermark for key. Entries never expire; Clear is the
// only way a record goes away.
func (r *RedisViewedStore) Set(ctx context.Context, key viewed.Key, watermark string) error {
	if err := r.client.Set(ctx, viewedKeyPrefix+key.String(), watermark, 0).Err(); err != nil {
		return fmt.Errorf("writing viewed state: %w", err)
	}
	return nil
}

// Delete removes the record for key if present.
func (r *RedisViewedStore) Delete(ctx context.Context, key viewed.Key) error {
	if err := r.client.Del(ctx, viewedKeyPrefix+key.String()).Err(); err != nil {
		return fmt.Errorf("deleting viewed state: %w", err)
	}
	return nil
}
