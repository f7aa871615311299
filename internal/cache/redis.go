// Package cache keeps short-lived copies of venue read results in Redis.
// Entries are namespaced by a generation counter; bumping the counter
// orphans every cached read at once and the TTL reclaims them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const generationKey = "venues:gen"

type VenueCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, ttl time.Duration, logger *zap.SugaredLogger) (*VenueCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &VenueCache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

func (c *VenueCache) Close() error {
	return c.rdb.Close()
}

// Key builds the cache key of a read under generation gen.
func Key(gen int64, parts ...string) string {
	return fmt.Sprintf("venues:v%d:%s", gen, strings.Join(parts, ":"))
}

func (c *VenueCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Invalidate bumps the generation so every cached read misses.
func (c *VenueCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}

// GetOrLoad returns the cached value for parts or calls load and caches its
// result. Redis failures fall through to load. A nil cache always loads.
func GetOrLoad[T any](ctx context.Context, c *VenueCache, parts []string, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}

	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warnw("venue cache generation read failed", "error", err)
		return load()
	}
	key := Key(gen, parts...)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.logger.Warnw("venue cache entry undecodable", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warnw("venue cache read failed", "key", key, "error", err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warnw("venue cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}
