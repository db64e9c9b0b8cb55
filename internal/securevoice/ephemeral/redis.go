package ephemeral

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addrs    []string // more than one address selects cluster mode
	Password string
	DB       int
}

// NewRedisClient returns a single-node or cluster client depending on how
// many addresses are given.
func NewRedisClient(opts RedisOptions) redis.UniversalClient {
	if len(opts.Addrs) > 1 {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    opts.Addrs,
			Password: opts.Password,
		})
	}
	addr := "localhost:6379"
	if len(opts.Addrs) == 1 {
		addr = opts.Addrs[0]
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// Redis is a Store shared by every server instance. Values are JSON encoded
// under "namespace:key".
//
// Redis evicts keys on its own, so Sweep has nothing to do. Keys are kept for
// ttl+grace so an entry stays readable briefly after its deadline, like the
// in-process store between sweeps, which lets callers tell an expired code
// from an unknown one.
type Redis[T any] struct {
	client    redis.UniversalClient
	namespace string
	grace     time.Duration
}

// NewRedis returns a Store writing under namespace.
func NewRedis[T any](client redis.UniversalClient, namespace string, grace time.Duration) *Redis[T] {
	return &Redis[T]{client: client, namespace: namespace, grace: grace}
}

func (r *Redis[T]) key(k string) string { return r.namespace + ":" + k }

func (r *Redis[T]) Put(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ephemeral: encode %s: %w", r.namespace, err)
	}
	return r.client.Set(ctx, r.key(key), raw, ttl+r.grace).Err()
}

func (r *Redis[T]) Get(ctx context.Context, key string) (T, error) {
	var out T

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return out, ErrNotFound
	}
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("ephemeral: decode %s: %w", r.namespace, err)
	}
	return out, nil
}

func (r *Redis[T]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis[T]) Sweep(context.Context, time.Time) (int, error) { return 0, nil }

func (r *Redis[T]) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
