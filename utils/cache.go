package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"fotura/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client, used for availability results.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// Availability results are cached per date under a version that every
// scheduling write bumps. Readers that embed the current version in their
// cache key can never serve a slot list computed before the latest write.

func availabilityVersionKey(date string) string {
	return fmt.Sprintf("avail:ver:%s", date)
}

// AvailabilityVersion returns the current cache version for a date (0 when
// the date has never been written to).
func AvailabilityVersion(ctx context.Context, date string) int64 {
	v, err := GetCacheClient().Get(ctx, availabilityVersionKey(date)).Int64()
	if err != nil {
		return 0
	}
	return v
}

// BumpAvailabilityVersion invalidates every cached slot list for a date.
// Called after finalize, reassign and block writes.
func BumpAvailabilityVersion(ctx context.Context, date string) {
	if err := GetCacheClient().Incr(ctx, availabilityVersionKey(date)).Err(); err != nil {
		GetLogger().Warn("failed to bump availability cache version",
			zap.String("date", date), zap.Error(err))
	}
}

// AvailabilityCacheKey builds the cache key for a computed slot list.
func AvailabilityCacheKey(date, requestFingerprint string, version int64) string {
	return fmt.Sprintf("avail:slots:%s:%s:%d", date, requestFingerprint, version)
}
