package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/ladle/backend/config"
	"github.com/pageza/ladle/backend/internal/types"
)

// SmartScaleKeyPrefix namespaces every smart-scale cache record.
const SmartScaleKeyPrefix = "scale:smart:"

// SmartScaleTTL is how long a smart-scale result stays valid.
const SmartScaleTTL = 24 * time.Hour

// NewRedisClient creates a new Redis client from configuration.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Use Redis URL if provided (for production deployments)
	if cfg.RedisURL != "" {
		parsedOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsedOpts
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisSmartScaleStore persists smart-scale results in Redis under a fixed
// key prefix with a per-entry TTL.
type RedisSmartScaleStore struct {
	client *redis.Client
}

// NewRedisSmartScaleStore wraps an existing Redis client.
func NewRedisSmartScaleStore(client *redis.Client) *RedisSmartScaleStore {
	return &RedisSmartScaleStore{client: client}
}

// Get retrieves a cached smart-scale result. Entries whose recorded expiry
// has passed are treated as absent and removed.
func (s *RedisSmartScaleStore) Get(ctx context.Context, key string) (*types.SmartScaleData, bool) {
	raw, err := s.client.Get(ctx, SmartScaleKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var entry Entry[types.SmartScaleData]
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	if entry.Expired(time.Now()) {
		s.client.Del(ctx, SmartScaleKeyPrefix+key)
		return nil, false
	}
	return &entry.Value, true
}

// Set stores a smart-scale result for SmartScaleTTL.
func (s *RedisSmartScaleStore) Set(ctx context.Context, key string, data *types.SmartScaleData) error {
	now := time.Now()
	entry := Entry[types.SmartScaleData]{
		Key:       key,
		Value:     *data,
		CreatedAt: now,
		ExpiresAt: now.Add(SmartScaleTTL),
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := s.client.Set(ctx, SmartScaleKeyPrefix+key, raw, SmartScaleTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cache entry to Redis: %w", err)
	}
	return nil
}

// SweepExpired scans all keys under the prefix and drops entries whose
// recorded expiry has passed. Redis also expires keys natively; the sweep
// covers entries written with a longer server-side TTL than their payload
// claims, and doubles as the explicit maintenance operation.
func (s *RedisSmartScaleStore) SweepExpired(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
		now     = time.Now()
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, SmartScaleKeyPrefix+"*", 100).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		for _, key := range keys {
			raw, err := s.client.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}
			var entry Entry[types.SmartScaleData]
			if err := json.Unmarshal(raw, &entry); err != nil || entry.Expired(now) {
				if s.client.Del(ctx, key).Err() == nil {
					removed++
				}
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return removed, nil
}
