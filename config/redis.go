package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisClient is nil when REDIS_HOST is unset; callers must treat the cache
// as a soft dependency.
var RedisClient *redis.Client

var ctx = context.Background()

// InitRedis connects the optional list cache. A missing REDIS_HOST is not an
// error: the server runs uncached.
func InitRedis(config Config) error {
	addr := config.GetRedisConnString()
	if addr == "" {
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		RedisClient = nil
		return fmt.Errorf("redis connection test failed: %v", err)
	}

	return nil
}
