// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"futsal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotStatusCachePrefix is the prefix for per-date slot read-model cache keys.
const SlotStatusCachePrefix = "slots:date:"

// SlotStatusCacheTTL bounds staleness of the slot availability view.
const SlotStatusCacheTTL = 30 * time.Second

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client (using DB from AppConfig for general caching).
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

// InvalidateSlotStatusCache drops the cached slot availability view for the
// given business date (YYYY-MM-DD). Cache errors are logged, never surfaced:
// the TTL bounds staleness anyway.
func InvalidateSlotStatusCache(ctx context.Context, dateKey string) {
	if CacheClient == nil {
		return
	}
	if err := CacheClient.Del(ctx, SlotStatusCachePrefix+dateKey).Err(); err != nil {
		GetLogger().Warn("Failed to invalidate slot status cache", zap.String("date", dateKey), zap.Error(err))
	}
}
