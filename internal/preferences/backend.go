package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"vethome/internal/repositories"
)

// Backend is the key-value storage behind a Store.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

func namespaced(key string) string {
	return Namespace + "." + key
}

// GORMBackend keeps preferences as rows of the relational store.
type GORMBackend struct {
	repo repositories.PreferenceRepository
}

func NewGORMBackend(repo repositories.PreferenceRepository) *GORMBackend {
	return &GORMBackend{repo: repo}
}

func (b *GORMBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return b.repo.Get(ctx, namespaced(key))
}

func (b *GORMBackend) Set(ctx context.Context, values map[string]string) error {
	prefixed := make(map[string]string, len(values))
	for k, v := range values {
		prefixed[namespaced(k)] = v
	}
	return b.repo.Set(ctx, prefixed)
}

func (b *GORMBackend) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = namespaced(k)
	}
	return b.repo.Delete(ctx, prefixed...)
}

// RedisConfig holds the connection settings of the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisBackend keeps preferences as plain Redis string keys.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects and pings the server.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	const op = "preferences.NewRedisBackend"
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisBackend{client: client}, nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "preferences.RedisBackend.Get"
	val, err := b.client.Get(ctx, namespaced(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set writes all values in one MULTI/EXEC block.
func (b *RedisBackend) Set(ctx context.Context, values map[string]string) error {
	const op = "preferences.RedisBackend.Set"
	if len(values) == 0 {
		return nil
	}
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, namespaced(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	const op = "preferences.RedisBackend.Delete"
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = namespaced(k)
	}
	if err := b.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
