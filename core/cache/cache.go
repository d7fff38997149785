package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"marketplace-api/core/config"
	"marketplace-api/core/constants"
	"marketplace-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis-backed cache used for token blacklisting, login attempt
// blocking and hot entity caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error

	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	IncrementLoginAttempt(ctx context.Context, key string) error
	IsLoginBlocked(ctx context.Context, key string) (bool, error)
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		logger.Error("Cache:Get", err)
		return "", err
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Error("Cache:Set", err)
		return err
	}
	return nil
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Error("Cache:Del", err)
		return err
	}
	return nil
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		logger.Error("Cache:Expire", err)
		return err
	}
	return nil
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	key := constants.RedisKeyTokenBlacklist + token
	return c.Set(ctx, key, "1", constants.RefreshTokenTTL)
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := constants.RedisKeyTokenBlacklist + token
	val, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return val != "", nil
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	fullKey := constants.RedisKeyLoginAttempt + key
	count, err := c.client.Incr(ctx, fullKey).Result()
	if err != nil {
		logger.Error("Cache:IncrementLoginAttempt", err)
		return err
	}
	// Start the block window from the first failed attempt
	if count == 1 {
		return c.Expire(ctx, fullKey, constants.BlockDuration)
	}
	return nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	fullKey := constants.RedisKeyLoginAttempt + key
	val, err := c.Get(ctx, fullKey)
	if err != nil {
		return false, err
	}
	if val == "" {
		return false, nil
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return false, nil
	}
	return count >= constants.MaxLoginAttempts, nil
}
