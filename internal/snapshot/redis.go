package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkrella/matchroom/internal/storage"
)

// RedisConfig holds Redis connection settings for the snapshot sink
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Key is the Redis key holding the snapshot
	Key string

	// Pool settings
	PoolSize     int
	MinIdleConns int
}

// DefaultRedisConfig returns sensible defaults for the Redis sink
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379",
		Key:          "matchroom:snapshot",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// RedisSink stores snapshots under a single Redis key
type RedisSink struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewRedisSink creates a Redis sink and verifies the connection
func NewRedisSink(cfg RedisConfig) (*RedisSink, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisSink{client: client, cfg: cfg}, nil
}

// NewRedisSinkWithClient creates a Redis sink with an existing client (for testing)
func NewRedisSinkWithClient(client *redis.Client, cfg RedisConfig) *RedisSink {
	return &RedisSink{client: client, cfg: cfg}
}

// Ensure RedisSink implements the interface
var _ Sink = (*RedisSink)(nil)

// Write marshals the snapshot and replaces the key's value
func (s *RedisSink) Write(ctx context.Context, snap *storage.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.cfg.Key, data, 0).Err()
}

// Load reads the snapshot key, or ErrNoSnapshot if it is unset
func (s *RedisSink) Load(ctx context.Context) (*storage.Snapshot, error) {
	data, err := s.client.Get(ctx, s.cfg.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	var snap storage.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Close closes the Redis connection
func (s *RedisSink) Close() error {
	return s.client.Close()
}
