// cache/redis.go - Leaderboard Snapshot Cache
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// leaderboardTTL keeps snapshots fresh enough for a point-in-time view
// while absorbing profile-page bursts.
const leaderboardTTL = 30 * time.Second

// InitRedis connects the optional leaderboard cache. Without REDIS_URL the
// cache stays disabled and leaderboard queries go straight to the database.
func InitRedis() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("Redis not configured, leaderboard cache disabled")
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, leaderboard cache disabled: %v", err)
		return
	}

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, leaderboard cache disabled: %v", err)
		return
	}

	client = c
	log.Println("✅ Redis leaderboard cache connected")
}

// CloseRedis closes the cache connection if one was established.
func CloseRedis() {
	if client != nil {
		_ = client.Close()
	}
}

// Enabled reports whether the cache is usable.
func Enabled() bool {
	return client != nil
}

func leaderboardKey(limit int) string {
	return fmt.Sprintf("leaderboard:top:%d", limit)
}

// GetLeaderboard loads a cached snapshot into dest. Returns false on miss
// or when the cache is disabled.
func GetLeaderboard(ctx context.Context, limit int, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, leaderboardKey(limit)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetLeaderboard stores a snapshot. Best effort: cache failures only cost
// the next caller a database query.
func SetLeaderboard(ctx context.Context, limit int, snapshot any) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := client.Set(ctx, leaderboardKey(limit), raw, leaderboardTTL).Err(); err != nil {
		log.Printf("leaderboard cache write failed: %v", err)
	}
}
