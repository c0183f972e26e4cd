package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"shipdate-policy-service/internal/domain"
)

type cachedDistance struct {
	Miles           float64 `json:"miles"`
	ResolvedAddress string  `json:"resolved_address"`
}

// RedisDistanceCache is a Redis-backed alternative to SQLDistanceCache
// for deployments that already run Redis next to the order forms.
type RedisDistanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDistanceCache builds a cache over the given Redis address.
// A zero TTL keeps entries until Redis evicts them.
func NewRedisDistanceCache(addr string, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *RedisDistanceCache) key(origin, destination string) string {
	return fmt.Sprintf("distance:%s|%s", origin, destination)
}

func (c *RedisDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (domain.DistanceResult, bool, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return domain.DistanceResult{}, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	raw, err := c.client.Get(ctx, c.key(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.DistanceResult{}, false, nil
	}
	if err != nil {
		return domain.DistanceResult{}, false, fmt.Errorf("get distance cache: redis get: %w", err)
	}

	var entry cachedDistance
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.DistanceResult{}, false, fmt.Errorf("get distance cache: decode entry: %w", err)
	}

	return domain.ResolvedMiles(entry.Miles, entry.ResolvedAddress), true, nil
}

func (c *RedisDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	result domain.DistanceResult,
) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	if !result.Resolved() {
		return errors.New("insert distance cache: refusing to store unresolved result")
	}

	raw, err := json.Marshal(cachedDistance{
		Miles:           *result.Miles,
		ResolvedAddress: result.ResolvedAddress,
	})
	if err != nil {
		return fmt.Errorf("insert distance cache: encode entry: %w", err)
	}

	if err := c.client.Set(ctx, c.key(origin, destination), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert distance cache: redis set: %w", err)
	}

	return nil
}

// Close releases the underlying Redis connection pool.
func (c *RedisDistanceCache) Close() error { return c.client.Close() }
