package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterTTL keeps abandoned counters from accumulating forever. A counter
// that expires simply restarts result rotation from the first page.
const counterTTL = 30 * 24 * time.Hour

// RedisCounter hands out per-owner search session numbers backed by Redis,
// so rotation survives process restarts.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a Redis-backed session counter.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Next atomically increments and returns the owner's session number.
func (c *RedisCounter) Next(ctx context.Context, ownerID string) (int, error) {
	key := "prospect:search_session:" + ownerID
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("session: incr failed: %w", err)
	}
	c.client.Expire(ctx, key, counterTTL)
	return int(n), nil
}

// MemoryCounter is the in-process fallback used when Redis is not configured.
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryCounter creates an in-memory session counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int)}
}

// Next increments and returns the owner's session number.
func (c *MemoryCounter) Next(ctx context.Context, ownerID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[ownerID]++
	return c.counts[ownerID], nil
}
