package utils

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"

	"github.com/redis/go-redis/v9"
)

// CacheClient is the Redis client holding poller state.
var CacheClient *redis.Client

// InitCache connects the cache client using the DB reserved for caching.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the cache client, connecting on first use.
func GetCacheClient() (*redis.Client, error) {
	if CacheClient == nil {
		if err := InitCache(); err != nil {
			return nil, err
		}
	}
	return CacheClient, nil
}

// CloseCache releases the cache client if one was opened.
func CloseCache() error {
	if CacheClient == nil {
		return nil
	}
	err := CacheClient.Close()
	CacheClient = nil
	return err
}
