package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
)

// FilterOptionsKey is the Redis key holding the cached filter options.
const FilterOptionsKey = "petty_cash:report:filter_options"

// store is the subset of redis.Cmdable the cache uses.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisFilterOptionsCache keeps filter options as JSON in Redis.
type RedisFilterOptionsCache struct {
	store  store
	client *redis.Client
}

var _ portssvc.FilterOptionsCache = (*RedisFilterOptionsCache)(nil)

// NewRedisFilterOptionsCache connects a cache to the given Redis server.
func NewRedisFilterOptionsCache(addr string, password string, db int) *RedisFilterOptionsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisFilterOptionsCache{store: client, client: client}
}

func (c *RedisFilterOptionsCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *RedisFilterOptionsCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RedisFilterOptionsCache) Get(ctx context.Context) (*domain.ReportFilterOptions, bool, error) {
	val, err := c.store.Get(ctx, FilterOptionsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read filter options from redis: %w", err)
	}

	var opts domain.ReportFilterOptions
	if err := json.Unmarshal(val, &opts); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached filter options: %w", err)
	}
	return &opts, true, nil
}

func (c *RedisFilterOptionsCache) Set(ctx context.Context, opts *domain.ReportFilterOptions, ttl time.Duration) error {
	if opts == nil {
		return nil
	}
	payload, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to encode filter options: %w", err)
	}
	if err := c.store.Set(ctx, FilterOptionsKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write filter options to redis: %w", err)
	}
	return nil
}
