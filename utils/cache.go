package utils

import (
	"context"
	"log"
	"time"

	"medisched/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient serves the optimization result cache.
	CacheClient *redis.Client
	// ForecastCacheClient holds warmed demand aggregates.
	ForecastCacheClient *redis.Client
)

// InitCache initializes the Redis client backing the result cache.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the result cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitForecastCache initializes the Redis client for demand aggregates.
func InitForecastCache() {
	ForecastCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisForecastDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ForecastCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Forecast Cache): %v", err)
	}
}

// GetForecastCacheClient returns the demand aggregate client.
func GetForecastCacheClient() *redis.Client {
	if ForecastCacheClient == nil {
		InitForecastCache()
	}
	return ForecastCacheClient
}
