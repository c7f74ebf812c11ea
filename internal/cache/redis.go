package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gallery:preview:"

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	Expiration time.Duration
	Timeout    time.Duration
}

// RedisStore keeps previews in redis so several instances share one cache.
type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
	timeout    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redis and pings it once.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	logging.Log.Infof("Preview cache connected to redis at %s", opts.Addr)

	return &RedisStore{client: client, expiration: opts.Expiration, timeout: opts.Timeout}, nil
}

func redisKey(key preview.CacheKey) string {
	return redisKeyPrefix + key.String()
}

func (s *RedisStore) Write(ctx context.Context, key preview.CacheKey, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Set(ctx, redisKey(key), data, s.expiration).Err()
}

func (s *RedisStore) Read(ctx context.Context, key preview.CacheKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, preview.ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Backend() string { return config.CacheBackendRedis }

func (s *RedisStore) Close() error {
	return s.client.Close()
}
