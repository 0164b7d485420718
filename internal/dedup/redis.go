package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * 24 * time.Hour

// Redis is a Deduper backed by Redis SETNX keys with a TTL, shared across
// runs and machines.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig holds Redis deduper configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// NewRedis creates a Redis-backed Deduper and verifies the connection
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "job-applier"
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &Redis{client: client, prefix: prefix, ttl: ttl}, nil
}

// AddIfNotExists marks key as seen, reporting whether it was new.
// On Redis errors it reports true so a flaky connection never drops jobs.
func (r *Redis) AddIfNotExists(ctx context.Context, key string) bool {
	redisKey := fmt.Sprintf("%s:url:%s", r.prefix, key)

	wasSet, err := r.client.SetNX(ctx, redisKey, 1, r.ttl).Result()
	if err != nil {
		return true
	}

	return wasSet
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
