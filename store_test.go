package stationprefs

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(opts ...Option) (*Store, *MockStorage) {
	storage := NewMockStorage()
	base := []Option{WithStorage(storage), WithLogger(&MockLogger{})}
	return New(append(base, opts...)...), storage
}

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, defaultCacheTTL, s.config.cacheTTL)
	assert.Equal(t, defaultProductLabel, s.config.label)
	assert.NotNil(t, s.config.logger)
	assert.IsType(t, ContextIdentity{}, s.config.identity)
}

func TestSetGetSystemRoundTrip(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "station_name", "Radio X", false))

	got, err := s.Get(ctx, "station_name", false)
	require.NoError(t, err)
	assert.Equal(t, "Radio X", got)
}

func TestSetTwiceLeavesOneRow(t *testing.T) {
	s, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "phone", "555-0100", false))
	require.NoError(t, s.Set(ctx, "phone", "555-0199", false))

	assert.Equal(t, 1, storage.RowCount("phone"))
	got, err := s.Get(ctx, "phone", false)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", got)
}

func TestGetUnsetKeyReturnsEmpty(t *testing.T) {
	s, _ := newTestStore()

	got, err := s.Get(context.Background(), "never_written", false)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestUserScopedWithoutIdentityUsesSystemRow(t *testing.T) {
	s, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "calendar_time_scale", "week", true))

	raw, ok := storage.Raw("calendar_time_scale", ScopeSystem, "")
	require.True(t, ok)
	assert.Equal(t, "week", raw)

	got, err := s.Get(ctx, "calendar_time_scale", false)
	require.NoError(t, err)
	assert.Equal(t, "week", got)
}

func TestUserScopedWithIdentity(t *testing.T) {
	s, storage := newTestStore()
	alice := WithIdentity(context.Background(), "alice")
	bob := WithIdentity(context.Background(), "bob")

	require.NoError(t, s.Set(context.Background(), "calendar_time_scale", "month", false))
	require.NoError(t, s.Set(alice, "calendar_time_scale", "day", true))

	got, err := s.Get(alice, "calendar_time_scale", true)
	require.NoError(t, err)
	assert.Equal(t, "day", got)

	// no fallback from a user row to the system row
	got, err = s.Get(bob, "calendar_time_scale", true)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = s.Get(alice, "calendar_time_scale", false)
	require.NoError(t, err)
	assert.Equal(t, "month", got)

	assert.Equal(t, 2, storage.RowCount("calendar_time_scale"))
}

func TestCustomIdentityResolver(t *testing.T) {
	s, storage := newTestStore(WithIdentityResolver(IdentityFunc(func(context.Context) (string, bool) {
		return "daemon-7", true
	})))

	require.NoError(t, s.Set(context.Background(), "library_num_entries", "50", true))

	_, ok := storage.Raw("library_num_entries", ScopeUser, "daemon-7")
	assert.True(t, ok)
}

func TestSetInvalidKey(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	assert.ErrorIs(t, s.Set(ctx, "", "v", false), ErrInvalidKey)
	assert.ErrorIs(t, s.Set(ctx, strings.Repeat("k", MaxKeyLength+1), "v", false), ErrInvalidKey)

	_, err := s.Get(ctx, "", false)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestWithoutStorage(t *testing.T) {
	s := New(WithLogger(&MockLogger{}))
	ctx := context.Background()

	assert.ErrorIs(t, s.Set(ctx, "k", "v", false), ErrStorageUnavailable)
	_, err := s.Get(ctx, "k", false)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	_, err = s.List(ctx, ScopeSystem)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestStorageErrorsPropagate(t *testing.T) {
	backendErr := errors.New("connection refused")
	logger := &MockLogger{}
	s, storage := newTestStore(WithLogger(logger))
	storage.SetError(backendErr)
	ctx := context.Background()

	assert.ErrorIs(t, s.Set(ctx, "k", "v", false), backendErr)
	_, err := s.Get(ctx, "k", false)
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, 0, logger.Count())
}

func TestCacheWriteThroughAndHit(t *testing.T) {
	cache := NewMockCache()
	s, storage := newTestStore(WithCache(cache))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "email", "ops@example.org", false))

	v, err := cache.Get(ctx, cacheKey("email", ScopeSystem, ""))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.org", v)

	// a hit is served without touching storage
	storage.SetError(errors.New("down"))
	got, err := s.Get(ctx, "email", false)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.org", got)
}

func TestCacheMissIsNotCached(t *testing.T) {
	cache := NewMockCache()
	s, _ := newTestStore(WithCache(cache))
	ctx := context.Background()

	got, err := s.Get(ctx, "missing", false)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = cache.Get(ctx, cacheKey("missing", ScopeSystem, ""))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheFailuresDoNotChangeResult(t *testing.T) {
	cache := NewMockCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	logger := &MockLogger{}
	s, _ := newTestStore(WithCache(cache), WithLogger(logger))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "city", "Toronto", false))
	got, err := s.Get(ctx, "city", false)
	require.NoError(t, err)
	assert.Equal(t, "Toronto", got)
	assert.GreaterOrEqual(t, logger.Count(), 2)
}

func TestCacheUnexpectedTypeFallsBackToStorage(t *testing.T) {
	cache := NewMockCache()
	s, _ := newTestStore(WithCache(cache))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "city", "Montreal", false))
	cache.Put(cacheKey("city", ScopeSystem, ""), 42)

	got, err := s.Get(ctx, "city", false)
	require.NoError(t, err)
	assert.Equal(t, "Montreal", got)
}

func TestCacheKeysSeparateScopes(t *testing.T) {
	assert.NotEqual(t,
		cacheKey("calendar_time_scale", ScopeSystem, ""),
		cacheKey("calendar_time_scale", ScopeUser, "alice"))
	assert.Equal(t, "pref:user:alice:k", cacheKey("k", ScopeUser, "alice"))
	assert.NotEqual(t, cacheKey("b:c", ScopeUser, "a"), cacheKey("c", ScopeUser, "a:b"))
}

func TestCacheKeysDoNotCollideAcrossOwners(t *testing.T) {
	s, _ := newTestStore(WithCache(NewMockCache()))
	ctx := context.Background()

	require.NoError(t, s.Set(WithIdentity(ctx, "a"), "b:c", "secret-of-a", true))

	got, err := s.Get(WithIdentity(ctx, "a:b"), "c", true)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = s.Get(WithIdentity(ctx, "a"), "b:c", true)
	require.NoError(t, err)
	assert.Equal(t, "secret-of-a", got)
}

func TestList(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	alice := WithIdentity(ctx, "alice")

	require.NoError(t, s.Set(ctx, "a", "1", false))
	require.NoError(t, s.Set(ctx, "b", "2", false))
	require.NoError(t, s.Set(alice, "c", "3", true))

	system, err := s.List(ctx, ScopeSystem)
	require.NoError(t, err)
	assert.Len(t, system, 2)

	user, err := s.List(alice, ScopeUser)
	require.NoError(t, err)
	require.Len(t, user, 1)
	assert.Equal(t, "c", user[0].Key)

	anon, err := s.List(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Empty(t, anon)
}

func TestSetStampsUpdatedAt(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, storage := newTestStore(WithClock(func() time.Time { return fixed }))

	require.NoError(t, s.Set(context.Background(), "k", "v", false))

	pref, err := storage.Get(context.Background(), "k", ScopeSystem, "")
	require.NoError(t, err)
	assert.Equal(t, fixed, pref.UpdatedAt)
}

func TestConcurrentSetsKeepOneRow(t *testing.T) {
	s, storage := newTestStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Set(ctx, "default_fade", "0.5", false))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, storage.RowCount("default_fade"))
}
