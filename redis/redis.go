package redis

import (
	"fmt"
	"log"
	"os"
	"time"

	"context"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

const blacklistPrefix = "blacklist:"

// InitRedis connects to the configured redis. The server runs without
// it (logout blacklisting and dashboard caching degrade to no-ops), so
// a missing REDIS_ADDR is a warning, not a crash.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("Warning: REDIS_ADDR is not set, running without redis")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// BlacklistToken revokes a JWT until it would have expired anyway.
func BlacklistToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, blacklistPrefix+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token was revoked by logout.
func IsTokenBlacklisted(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, blacklistPrefix+token).Result()
	return err == nil && n > 0
}

// CacheJSON stores a prepared payload under key with a TTL. Used for
// dashboard aggregates only; slot availability is never cached.
func CacheJSON(key string, payload []byte, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("redis: failed to cache %s: %v", key, err)
	}
}

// GetCachedJSON fetches a cached payload, returning nil on any miss.
func GetCachedJSON(key string) []byte {
	if Client == nil {
		return nil
	}
	payload, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return payload
}
