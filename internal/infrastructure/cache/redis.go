package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisOptions maps the config onto client options. A client built from them
// dials on first use.
func RedisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(RedisOptions(cfg))

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Successfully connected to Redis")

	return client, nil
}

// ResponseCache stores rendered GET responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Flush(ctx context.Context) error
}

const responseKeyPrefix = "response_cache:"

type redisResponseCache struct {
	client redis.Cmdable
}

func NewRedisResponseCache(client redis.Cmdable) ResponseCache {
	return &redisResponseCache{client: client}
}

func (c *redisResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *redisResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, responseKeyPrefix+key, body, ttl).Err()
}

// Flush drops every cached response. Keys are found with SCAN so the server
// is never blocked by KEYS.
func (c *redisResponseCache) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// NopResponseCache never stores anything. Used when CACHE_ENABLED is false.
type NopResponseCache struct{}

func (NopResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NopResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return nil
}

func (NopResponseCache) Flush(ctx context.Context) error {
	return nil
}
