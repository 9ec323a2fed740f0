package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"go.uber.org/zap"
)

// Cache stores generated narratives as strings
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// NewCache builds the configured backend; CacheNone yields nil
func NewCache(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case config.CacheMemory, "":
		return NewMemoryCache(), nil
	case config.CacheRedis:
		return NewRedisCache(cfg), nil
	case config.CacheNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

type memoryEntry struct {
	value   string
	expires time.Time // zero never expires
}

// MemoryCache is a process-local Cache with lazy expiry
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryCache creates an empty cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, key)
		return "", false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

// Len is the number of stored entries, expired or not
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Cached memoizes another Recommender. Rule-based narratives and comparisons
// are cheap and are not stored, so a provider outage is not pinned for the TTL.
type Cached struct {
	next   Recommender
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCached wraps next with cache
func NewCached(next Recommender, cache Cache, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *Cached) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	key, err := cacheKey("rec", req)
	if err != nil {
		return c.next.Recommend(ctx, req)
	}

	if raw, ok := c.cache.Get(ctx, key); ok {
		var rec Recommendation
		if err := json.Unmarshal([]byte(raw), &rec); err == nil {
			rec.Source = SourceCache
			return rec, nil
		}
		c.logger.Warn("discarding corrupt cache entry", zap.String("op", "recommend.Cached.Recommend"), zap.String("key", key))
	}

	rec, err := c.next.Recommend(ctx, req)
	if err != nil {
		return rec, err
	}
	if rec.Source == SourceRules {
		return rec, nil
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
			c.logger.Warn("cache write failed", zap.String("op", "recommend.Cached.Recommend"), zap.Error(err))
		}
	}
	return rec, nil
}

func (c *Cached) Compare(ctx context.Context, matches []domain.VehicleMatch, profile UserSummary) (Comparison, error) {
	if len(matches) < 2 {
		return c.next.Compare(ctx, matches, profile)
	}
	key, err := cacheKey("cmp", struct {
		Matches []domain.VehicleMatch `json:"matches"`
		Profile UserSummary           `json:"profile"`
	}{matches, profile})
	if err != nil {
		return c.next.Compare(ctx, matches, profile)
	}

	if text, ok := c.cache.Get(ctx, key); ok {
		return Comparison{Text: text, Source: SourceCache}, nil
	}
	cmp, err := c.next.Compare(ctx, matches, profile)
	if err != nil {
		return cmp, err
	}
	if cmp.Source == SourceRules {
		return cmp, nil
	}
	if err := c.cache.Set(ctx, key, cmp.Text, c.ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("op", "recommend.Cached.Compare"), zap.Error(err))
	}
	return cmp, nil
}

// cacheKey hashes the JSON form of v
func cacheKey(kind string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("drivefit:%s:%016x", kind, xxhash.Sum64(data)), nil
}
