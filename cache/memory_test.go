package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CreativeUnicorns/stationprefs"
	"github.com/CreativeUnicorns/stationprefs/storage"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer func() {
		if err := cache.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	if err := cache.Set(ctx, "pref:system::station_name", "Radio X", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "pref:system::station_name")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "Radio X" {
		t.Errorf("Expected 'Radio X', got '%v'", val)
	}

	_, err = cache.Get(ctx, "nonExistentKey")
	if !errors.Is(err, stationprefs.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	if err := cache.Set(ctx, "short", "v", 20*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Set(ctx, "forever", "v", 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, stationprefs.ErrNotFound) {
		t.Errorf("Expected expired key to be ErrNotFound, got %v", err)
	}
	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("Expected key without ttl to survive, got %v", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	_ = cache.Set(ctx, "k", "v", time.Minute)
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("Deleting a missing key should not fail: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d items", cache.Len())
	}
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	_ = cache.Set(ctx, "k", "v", time.Minute)

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, stationprefs.ErrCacheUnavailable) {
		t.Errorf("Expected ErrCacheUnavailable after close, got %v", err)
	}
	if err := cache.Set(ctx, "k", "v", time.Minute); !errors.Is(err, stationprefs.ErrCacheUnavailable) {
		t.Errorf("Expected ErrCacheUnavailable after close, got %v", err)
	}
}

func TestMemoryCache_WithStore(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()

	store := stationprefs.New(
		stationprefs.WithStorage(storage.NewMemoryStorage()),
		stationprefs.WithCache(cache),
	)
	ctx := context.Background()

	if err := store.SetEmail(ctx, "ops@example.org"); err != nil {
		t.Fatalf("SetEmail failed: %v", err)
	}
	got, err := store.GetEmail(ctx)
	if err != nil || got != "ops@example.org" {
		t.Fatalf("GetEmail = %q, %v", got, err)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected one cached preference, got %d", cache.Len())
	}
}
