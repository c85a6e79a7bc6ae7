package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
)

const (
	lookupKeyPrefix = "wz:lookup:" // Cached candidate lists: wz:lookup:{query}
	purgeScanCount  = 200
)

// CandidateCache handles Redis operations for cached lookup results
type CandidateCache struct {
	client *redis.Client
}

// NewCandidateCache creates a new CandidateCache
func NewCandidateCache(client *redis.Client) *CandidateCache {
	return &CandidateCache{client: client}
}

// Get retrieves the cached result for a normalized query. Returns
// domain.ErrNotCached on a miss; a corrupt entry is treated as a miss.
func (c *CandidateCache) Get(ctx context.Context, query string) (domain.Result, error) {
	data, err := c.client.Get(ctx, c.key(query)).Result()
	if err == redis.Nil {
		return domain.Result{}, domain.ErrNotCached
	}
	if err != nil {
		return domain.Result{}, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result domain.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return domain.Result{}, domain.ErrNotCached
	}
	result.Source = domain.SourceCache
	return result, nil
}

// Put stores a result under its normalized query with the given TTL.
func (c *CandidateCache) Put(ctx context.Context, result domain.Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := c.client.Set(ctx, c.key(result.Query), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return nil
}

// Purge deletes every cached lookup entry and returns how many were
// removed. Uses SCAN so other keyspaces in the same Redis are untouched.
func (c *CandidateCache) Purge(ctx context.Context) (int64, error) {
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, lookupKeyPrefix+"*", purgeScanCount).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

func (c *CandidateCache) key(query string) string {
	return lookupKeyPrefix + query
}
