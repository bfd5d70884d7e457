package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"lingua_backend/domain"
	"time"
)

const leaderboardTTL = 30 * time.Second

type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache wraps a Redis client as a read-through cache for
// leaderboard pages. Entries expire after a short TTL so standings stay
// close to the live table.
func NewLeaderboardCache(client *redis.Client) domain.LeaderboardCache {
	return &leaderboardCache{
		client: client,
		ttl:    leaderboardTTL,
	}
}

func (c *leaderboardCache) key(limit int) string {
	return fmt.Sprintf("leaderboard:%d", limit)
}

func (c *leaderboardCache) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	payload, err := c.client.Get(ctx, c.key(limit)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrLeaderboardCacheMiss
		}
		return nil, err
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *leaderboardCache) SetLeaderboard(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(limit), payload, c.ttl).Err()
}
