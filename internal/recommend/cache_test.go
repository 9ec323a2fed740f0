package recommend

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRecommender records calls and returns a fixed source
type countingRecommender struct {
	source   string
	recCalls int
	cmpCalls int
}

func (c *countingRecommender) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	c.recCalls++
	rec, _ := RuleBased{}.Recommend(ctx, req)
	rec.Source = c.source
	return rec, nil
}

func (c *countingRecommender) Compare(ctx context.Context, matches []domain.VehicleMatch, p UserSummary) (Comparison, error) {
	c.cmpCalls++
	cmp, _ := RuleBased{}.Compare(ctx, matches, p)
	cmp.Source = c.source
	return cmp, nil
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "forever", "2", 0))

	v, ok := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	now = now.Add(time.Minute)
	_, ok = c.Get(ctx, "a")
	assert.False(t, ok, "Should expire at the TTL")
	assert.Equal(t, 1, c.Len())

	v, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestCached_Recommend(t *testing.T) {
	ctx := context.Background()
	next := &countingRecommender{source: SourceGemini}
	cached := NewCached(next, NewMemoryCache(), time.Hour, nil)
	req := Request{Match: camryHybridMatch(), Profile: scenarioSummary()}

	first, err := cached.Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, SourceGemini, first.Source)

	second, err := cached.Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.KeyPoints, second.KeyPoints)
	assert.Equal(t, 1, next.recCalls)

	other := req
	other.Profile.CreditScore = 650
	_, err = cached.Recommend(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, next.recCalls, "Different input should miss")
}

func TestCached_SkipsRuleBased(t *testing.T) {
	ctx := context.Background()
	next := &countingRecommender{source: SourceRules}
	store := NewMemoryCache()
	cached := NewCached(next, store, time.Hour, nil)
	req := Request{Match: camryHybridMatch(), Profile: scenarioSummary()}

	_, _ = cached.Recommend(ctx, req)
	_, _ = cached.Recommend(ctx, req)
	assert.Equal(t, 2, next.recCalls)
	assert.Equal(t, 0, store.Len())
}

func TestCached_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCache()
	req := Request{Match: camryHybridMatch(), Profile: scenarioSummary()}
	key, err := cacheKey("rec", req)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, key, "{not json", 0))

	next := &countingRecommender{source: SourceGemini}
	rec, err := NewCached(next, store, time.Hour, nil).Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, SourceGemini, rec.Source)
	assert.Equal(t, 1, next.recCalls)
}

func TestCached_Compare(t *testing.T) {
	ctx := context.Background()
	next := &countingRecommender{source: SourceGemini}
	cached := NewCached(next, NewMemoryCache(), time.Hour, nil)
	matches := []domain.VehicleMatch{camryHybridMatch(), rav4Match()}

	a, err := cached.Compare(ctx, matches, scenarioSummary())
	require.NoError(t, err)
	assert.Equal(t, SourceGemini, a.Source)
	b, err := cached.Compare(ctx, matches, scenarioSummary())
	require.NoError(t, err)
	assert.Equal(t, a.Text, b.Text)
	assert.Equal(t, SourceCache, b.Source)
	assert.Equal(t, 1, next.cmpCalls)

	cmp, _ := cached.Compare(ctx, matches[:1], scenarioSummary())
	assert.Equal(t, NotEnoughToCompare, cmp.Text)
}

func TestCached_CompareSkipsRuleBased(t *testing.T) {
	ctx := context.Background()
	next := &countingRecommender{source: SourceRules}
	store := NewMemoryCache()
	cached := NewCached(next, store, time.Hour, nil)
	matches := []domain.VehicleMatch{camryHybridMatch(), rav4Match()}

	for i := 0; i < 2; i++ {
		_, err := cached.Compare(ctx, matches, scenarioSummary())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, next.cmpCalls)
	assert.Equal(t, 0, store.Len())
}

func TestCached_CompareRetriesAfterProviderOutage(t *testing.T) {
	ctx := context.Background()
	failing, prompts := geminiServer(t, http.StatusServiceUnavailable, "")
	store := NewMemoryCache()
	cached := NewCached(newTestGemini(failing.URL), store, time.Hour, nil)
	matches := []domain.VehicleMatch{camryHybridMatch(), rav4Match()}

	for i := 0; i < 3; i++ {
		cmp, err := cached.Compare(ctx, matches, scenarioSummary())
		require.NoError(t, err)
		assert.Equal(t, topMatchSentence(matches[0]), cmp.Text)
		assert.Equal(t, SourceRules, cmp.Source)
	}
	assert.Len(t, *prompts, 3, "Each call should reach the provider again")
	assert.Equal(t, 0, store.Len(), "Fallback text should not be cached")
}

func TestCacheKey(t *testing.T) {
	req := Request{Match: camryHybridMatch(), Profile: scenarioSummary()}
	a, err := cacheKey("rec", req)
	require.NoError(t, err)
	b, _ := cacheKey("rec", req)
	c, _ := cacheKey("cmp", req)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^drivefit:rec:[0-9a-f]{16}$`, a)
}

func TestNewCache(t *testing.T) {
	c, err := NewCache(config.CacheConfig{Backend: config.CacheMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = NewCache(config.CacheConfig{Backend: config.CacheNone})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewCache(config.CacheConfig{Backend: config.CacheRedis, RedisAddr: "localhost:6379"})
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)
	require.NoError(t, c.(*RedisCache).Close())

	_, err = NewCache(config.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	r := New(config.RecommenderConfig{Provider: config.ProviderRules}, nil, 0, nil)
	assert.IsType(t, RuleBased{}, r)

	r = New(config.RecommenderConfig{Provider: config.ProviderGemini}, nil, 0, nil)
	assert.IsType(t, &Gemini{}, r)

	r = New(config.RecommenderConfig{Provider: config.ProviderRules}, NewMemoryCache(), time.Minute, nil)
	assert.IsType(t, &Cached{}, r)
}
