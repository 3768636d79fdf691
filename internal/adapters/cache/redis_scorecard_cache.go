package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"driver-performance-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisScorecardCache is a Redis-backed cache for serialized scorecard
// responses. Entries expire after the configured TTL; Invalidate drops every
// entry under the cache's key prefix.
//
// The cache is handed to its consumers explicitly; there is no package-level
// instance and no shared state beyond Redis itself.
type RedisScorecardCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisScorecardCache(client *redis.Client, ttl time.Duration, prefix string) *RedisScorecardCache {
	if prefix == "" {
		prefix = "scorecards"
	}
	return &RedisScorecardCache{Client: client, TTL: ttl, Prefix: prefix}
}

// Get returns the cached payload for key, with a miss reported as
// (nil, false, nil).
func (c *RedisScorecardCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "scorecard.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("scorecard cache: client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get scorecard cache: key must not be empty")
	}

	payload, err := c.Client.Get(ctx, c.Prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get scorecard cache: %w", err)
	}

	return payload, true, nil
}

// Put stores the payload under key with the cache's TTL.
func (c *RedisScorecardCache) Put(ctx context.Context, key string, payload []byte) error {
	if c.Client == nil {
		return errors.New("scorecard cache: client is nil")
	}
	if key == "" {
		return errors.New("put scorecard cache: key must not be empty")
	}

	if err := c.Client.Set(ctx, c.Prefix+":"+key, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("put scorecard cache: %w", err)
	}

	return nil
}

// Invalidate removes every cached entry under the prefix.
func (c *RedisScorecardCache) Invalidate(ctx context.Context) (err error) {
	defer obs.Time(ctx, "scorecard.cache.Invalidate")(&err)

	if c.Client == nil {
		return errors.New("scorecard cache: client is nil")
	}

	iter := c.Client.Scan(ctx, 0, c.Prefix+":*", 100).Iterator()

	keys := make([]string, 0, 64)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("invalidate scorecard cache: scan keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate scorecard cache: delete keys: %w", err)
	}

	return nil
}
