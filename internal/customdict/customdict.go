package customdict

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding custom words.
const DefaultKey = "custom_dict"

// Store persists custom words between processes.
type Store interface {
	Add(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
}

// RedisStore wraps a Redis client to store custom dictionary words.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a RedisStore on the given set key. An empty key uses
// DefaultKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// Add inserts a word into the Redis set.
func (rs *RedisStore) Add(ctx context.Context, word string) error {
	return rs.client.SAdd(ctx, rs.key, word).Err()
}

// All returns all words stored in the Redis set.
func (rs *RedisStore) All(ctx context.Context) ([]string, error) {
	return rs.client.SMembers(ctx, rs.key).Result()
}

// CustomDict is the process-wide set of lowercase words that are always
// treated as correctly spelled. It only grows. Safe for concurrent use.
type CustomDict struct {
	mu     sync.RWMutex
	words  map[string]struct{}
	store  Store
	logger *slog.Logger
}

// New creates an empty CustomDict. store may be nil for a purely in-memory
// dictionary.
func New(store Store, logger *slog.Logger) *CustomDict {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomDict{
		words:  make(map[string]struct{}),
		store:  store,
		logger: logger,
	}
}

// Load pulls every word from the store into memory and returns them.
func (cd *CustomDict) Load(ctx context.Context) ([]string, error) {
	if cd.store == nil {
		return nil, nil
	}
	words, err := cd.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("customdict: load: %w", err)
	}
	cd.mu.Lock()
	for _, w := range words {
		cd.words[w] = struct{}{}
	}
	cd.mu.Unlock()
	cd.logger.Info("custom dictionary loaded", "words", len(words))
	return words, nil
}

// Add inserts an already-normalized word. The in-memory set is updated even
// when persisting fails; the store error is returned so callers can log it.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	cd.mu.Lock()
	cd.words[word] = struct{}{}
	cd.mu.Unlock()
	if cd.store == nil {
		return nil
	}
	if err := cd.store.Add(ctx, word); err != nil {
		return fmt.Errorf("customdict: persist %q: %w", word, err)
	}
	return nil
}

// Contains reports whether word is in the dictionary.
func (cd *CustomDict) Contains(word string) bool {
	cd.mu.RLock()
	_, ok := cd.words[word]
	cd.mu.RUnlock()
	return ok
}

// Words returns a sorted snapshot of the dictionary.
func (cd *CustomDict) Words() []string {
	cd.mu.RLock()
	out := make([]string, 0, len(cd.words))
	for w := range cd.words {
		out = append(out, w)
	}
	cd.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Len returns the number of words.
func (cd *CustomDict) Len() int {
	cd.mu.RLock()
	defer cd.mu.RUnlock()
	return len(cd.words)
}
