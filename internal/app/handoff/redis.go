package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis with a TTL so a slot never outlives its tab by long.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore wraps client.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put implements Store.
func (r *RedisStore) Put(ctx context.Context, tabID string, session *MeetingSession) error {
	data, err := encode(session)
	if err != nil {
		return fmt.Errorf("encode meeting session: %w", err)
	}

	if err := r.client.Set(ctx, storageKey(tabID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis_handoff_set_failed: %w", err)
	}
	return nil
}

// Take implements Store. GETDEL makes consume atomic.
func (r *RedisStore) Take(ctx context.Context, tabID string) (*MeetingSession, error) {
	data, err := r.client.GetDel(ctx, storageKey(tabID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("redis_handoff_getdel_failed: %w", err)
	}

	session, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode meeting session: %w", err)
	}
	return session, nil
}

// Clear implements Store.
func (r *RedisStore) Clear(ctx context.Context, tabID string) error {
	if err := r.client.Del(ctx, storageKey(tabID)).Err(); err != nil {
		return fmt.Errorf("redis_handoff_del_failed: %w", err)
	}
	return nil
}

// NewRedisClient parses redisURL and pings the server before returning the client.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = 2 * time.Second
	options.WriteTimeout = 2 * time.Second

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	return client, nil
}
