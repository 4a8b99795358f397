package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache keeps a small in-process layer in front of Redis.
// Reads check memory first and promote Redis hits, writes go to both.
type LayeredCache struct {
	memory    *MemoryCache
	redis     *RedisCache
	memoryTTL time.Duration
}

// NewLayeredCache combines a memory layer and a Redis layer.
// memoryTTL bounds how long the local layer may serve a value
// before falling through to Redis again.
func NewLayeredCache(memory *MemoryCache, redis *RedisCache, memoryTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory:    memory,
		redis:     redis,
		memoryTTL: memoryTTL,
	}
}

func (c *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := c.redis.Set(ctx, key, value, expiration); err != nil {
		return err
	}

	ttl := c.memoryTTL
	if expiration > 0 && expiration < ttl {
		ttl = expiration
	}
	return c.memory.Set(ctx, key, value, ttl)
}

func (c *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	err := c.memory.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	var raw string
	if err := c.redis.Get(ctx, key, &raw); err != nil {
		return err
	}

	_ = c.memory.Set(ctx, key, raw, c.memoryTTL)

	if strPtr, ok := dest.(*string); ok {
		*strPtr = raw
		return nil
	}
	return decodeString(raw, dest)
}

func (c *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	if err := c.memory.Delete(ctx, keys...); err != nil {
		return err
	}
	return c.redis.Delete(ctx, keys...)
}

func (c *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	ok, err := c.memory.Exists(ctx, keys...)
	if err == nil && ok {
		return true, nil
	}
	return c.redis.Exists(ctx, keys...)
}

// Close releases both layers.
func (c *LayeredCache) Close() error {
	memErr := c.memory.Close()
	redisErr := c.redis.Close()
	if memErr != nil {
		return memErr
	}
	return redisErr
}
