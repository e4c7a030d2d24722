package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pushp314/learnhub-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

// InitRedis connects the shared Redis client. Caching is optional:
// if the connection fails the client stays nil and callers fall through.
func InitRedis(addr, password string) {
	if addr == "" {
		logger.Warn().Msg("REDIS_ADDR not set, caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to Redis, caching disabled")
		return
	}

	Redis = client
	logger.Info().Str("addr", addr).Msg("Connected to Redis")
}

// CacheSet stores a JSON-encoded value with an expiration.
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return redis.Nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, payload, expiration).Err()
}

// CacheGet loads a JSON-encoded value into dest. Returns redis.Nil on miss
// or when no Redis client is configured.
func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// CacheInvalidate deletes all keys matching a pattern.
func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
