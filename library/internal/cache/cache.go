package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/pkg/circuit_breaker"
)

const scanBatch = 100

// Cache is best-effort: a failing backend reads as a miss and writes are dropped.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefixes ...string)
}

type redisCache struct {
	client *redis.Client
	cb     circuit_breaker.CircuitBreaker
	log    *zap.Logger
}

func NewRedis(ctx context.Context, url string, cbCfg circuit_breaker.Config, log *zap.Logger) (*redisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "redis.ParseURL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis.Ping")
	}
	return &redisCache{
		client: client,
		cb:     circuit_breaker.New(cbCfg),
		log:    log.Named("cache"),
	}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	var val string
	err := c.cb.Call(func() error {
		var err error
		val, err = c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		c.log.Warn("cache get", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return val, val != ""
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	err := c.cb.Call(func() error {
		return c.client.Set(ctx, key, value, ttl).Err()
	})
	if err != nil {
		c.log.Warn("cache set", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix deletes every key under the prefixes. SCAN keeps Redis responsive on large keyspaces.
func (c *redisCache) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		err := c.cb.Call(func() error {
			iter := c.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
			keys := make([]string, 0, scanBatch)
			for iter.Next(ctx) {
				keys = append(keys, iter.Val())
			}
			if err := iter.Err(); err != nil {
				return err
			}
			if len(keys) == 0 {
				return nil
			}
			return c.client.Del(ctx, keys...).Err()
		})
		if err != nil {
			c.log.Warn("cache invalidate", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

type nopCache struct{}

// NewNop is used when no Redis is configured.
func NewNop() Cache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) (string, bool)         { return "", false }
func (nopCache) Set(context.Context, string, string, time.Duration) {}
func (nopCache) InvalidatePrefix(context.Context, ...string)        {}
