// ABOUTME: Redis-backed scroll position store for multi-instance deployments
// ABOUTME: Positions shared across engine instances behind a load balancer

package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"docview-engine/core/domain"
	"docview-engine/core/errors"
	"docview-engine/pkg/config"
)

// keyPrefix namespaces position entries in a shared Redis instance.
const keyPrefix = "docview:scrollpos:"

// Store implements the ScrollPositionStore interface on Redis.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis using the given configuration and verifies
// the connection with a ping.
func NewStore(cfg config.RedisConfig) (*Store, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Save unconditionally overwrites the offset for a document.
func (s *Store) Save(ctx context.Context, key domain.DocumentKey, offset float64) error {
	if key == "" {
		return &errors.StoreError{Backend: "redis", Op: "save", Err: fmt.Errorf("empty document key")}
	}

	value := strconv.FormatFloat(offset, 'f', -1, 64)
	if err := s.client.Set(ctx, keyPrefix+string(key), value, 0).Err(); err != nil {
		return &errors.StoreError{Backend: "redis", Op: "save", Err: err}
	}
	return nil
}

// Get returns the saved offset for a document.
func (s *Store) Get(ctx context.Context, key domain.DocumentKey) (float64, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+string(key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &errors.StoreError{Backend: "redis", Op: "get", Err: err}
	}

	offset, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, &errors.StoreError{Backend: "redis", Op: "get", Err: err}
	}
	return offset, true, nil
}

// Delete removes the entry for a document.
func (s *Store) Delete(ctx context.Context, key domain.DocumentKey) error {
	if err := s.client.Del(ctx, keyPrefix+string(key)).Err(); err != nil {
		return &errors.StoreError{Backend: "redis", Op: "delete", Err: err}
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
