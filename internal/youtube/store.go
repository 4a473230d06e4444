package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store memoizes query → video id. Entries are only ever added; there is
// no eviction and no expiry.
type Store interface {
	Get(ctx context.Context, query string) (videoID string, ok bool, err error)
	// Add records videoID for query unless an entry already exists.
	Add(ctx context.Context, query, videoID string) error
	Len(ctx context.Context) (int, error)
	Close() error
}

// NewStore returns a Redis-backed store when redisURL is set and reachable,
// otherwise a process-local MemoryStore.
func NewStore(redisURL string) Store {
	if redisURL == "" {
		return NewMemoryStore()
	}

	store, err := NewRedisStore(redisURL)
	if err != nil {
		slog.Warn("Redis unavailable; using in-memory search cache", "error", err)
		return NewMemoryStore()
	}
	slog.Info("Using Redis search cache")
	return store
}

// MemoryStore keeps the cache in a map for the lifetime of the process
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, query string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videoID, ok := s.items[query]
	return videoID, ok, nil
}

func (s *MemoryStore) Add(_ context.Context, query, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[query]; !exists {
		s.items[query] = videoID
	}
	return nil
}

func (s *MemoryStore) Len(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

const redisKeyPrefix = "youtube:search:"

// RedisStore shares the cache between processes. Keys never expire.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(ctx context.Context, query string) (string, bool, error) {
	videoID, err := s.rdb.Get(ctx, redisKeyPrefix+query).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get error: %w", err)
	}
	return videoID, true, nil
}

func (s *RedisStore) Add(ctx context.Context, query, videoID string) error {
	if err := s.rdb.SetNX(ctx, redisKeyPrefix+query, videoID, 0).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("cache scan error: %w", err)
	}
	return n, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
