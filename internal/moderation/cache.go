package moderation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefix for cached scores: moderation:score:{sha256(text)}
const cacheKeyPrefix = "moderation:score:"

// Cache keeps recent Perspective scores in Redis so repeated submissions of
// the same text (retries after a validation error, the review preview flow)
// don't burn upstream quota.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached scores for text, or false on a miss. Redis being
// down is treated as a miss, never an error.
func (c *Cache) Get(ctx context.Context, text string) (Scores, bool) {
	if c == nil || c.client == nil {
		return Scores{}, false
	}

	data, err := c.client.Get(ctx, cacheKey(text)).Result()
	if err != nil {
		return Scores{}, false
	}

	var scores Scores
	if err := json.Unmarshal([]byte(data), &scores); err != nil {
		return Scores{}, false
	}
	return scores, true
}

// Set stores scores for text; failures are ignored.
func (c *Cache) Set(ctx context.Context, text string, scores Scores) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(scores)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(text), data, c.ttl)
}
