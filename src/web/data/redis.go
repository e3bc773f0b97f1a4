package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

const cachePrefix = "factlens:cache:"

// RedisCache adapts a redis client to the pipeline's cache interface.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, cachePrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis get %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, cachePrefix+key, value, ttl).Err(); err != nil {
		log.Printf("redis set %s: %v", key, err)
	}
}
