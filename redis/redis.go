package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the shared client. Redis backs the category cache and
// the token blacklist; both degrade to no-ops when it is unreachable, so a
// failed connection is logged rather than fatal.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Warning: Redis unavailable at %s: %v", addr, err)
		return
	}
	Client = client
	log.Println("✅ Connected to Redis")
}

// BlacklistToken revokes an access token by jti until it would expire anyway.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Client == nil || jti == "" || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, "blacklist:"+jti, 1, ttl).Err()
}

// IsBlacklisted reports whether a token's jti has been revoked.
func IsBlacklisted(jti string) bool {
	if Client == nil || jti == "" {
		return false
	}
	n, err := Client.Exists(Ctx, "blacklist:"+jti).Result()
	return err == nil && n > 0
}

// CacheGet returns a cached value and whether it was present.
func CacheGet(key string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	val, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// CacheSet stores a value with a TTL, best-effort.
func CacheSet(key string, val []byte, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, key, val, ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

// CacheDel drops cached keys, best-effort.
func CacheDel(keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(Ctx, keys...).Err(); err != nil {
		log.Printf("cache del: %v", err)
	}
}
