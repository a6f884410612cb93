package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/stationprefs"
)

// setupSQLiteTest creates a SQLite database in a temp dir and closes it when the test ends.
func setupSQLiteTest(t *testing.T) (*SQLiteStorage, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), fmt.Sprintf("test_prefs_%d.db", time.Now().UnixNano()))
	storage, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err, "Failed to initialize SQLiteStorage")
	t.Cleanup(func() {
		assert.NoError(t, storage.Close())
	})
	return storage, dbPath
}

func TestSQLiteStorage_UpsertGet(t *testing.T) {
	storage, _ := setupSQLiteTest(t)
	ctx := context.Background()
	ts := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	_, err := storage.Get(ctx, "station_name", stationprefs.ScopeSystem, "")
	assert.ErrorIs(t, err, stationprefs.ErrNotFound)

	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{
		Key: "station_name", Scope: stationprefs.ScopeSystem, Value: "Radio X", UpdatedAt: ts,
	}))

	pref, err := storage.Get(ctx, "station_name", stationprefs.ScopeSystem, "")
	require.NoError(t, err)
	assert.Equal(t, "Radio X", pref.Value)
	assert.Equal(t, stationprefs.ScopeSystem, pref.Scope)
	assert.Equal(t, "", pref.OwnerID)
	assert.Equal(t, ts.Unix(), pref.UpdatedAt.Unix())
}

func TestSQLiteStorage_UpsertReplaces(t *testing.T) {
	storage, _ := setupSQLiteTest(t)
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "default_fade", Value: v}))
	}

	var n int
	require.NoError(t, storage.db.QueryRow(`SELECT COUNT(*) FROM cc_pref WHERE keystr = 'default_fade'`).Scan(&n))
	assert.Equal(t, 1, n)

	pref, err := storage.Get(ctx, "default_fade", stationprefs.ScopeSystem, "")
	require.NoError(t, err)
	assert.Equal(t, "c", pref.Value)
}

func TestSQLiteStorage_ScopesAreSeparate(t *testing.T) {
	storage, _ := setupSQLiteTest(t)
	ctx := context.Background()

	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "calendar_time_scale", Value: "month"}))
	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "calendar_time_scale", Scope: stationprefs.ScopeUser, OwnerID: "7", Value: "day"}))
	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "calendar_time_scale", Scope: stationprefs.ScopeUser, OwnerID: "8", Value: "week"}))

	pref, err := storage.Get(ctx, "calendar_time_scale", stationprefs.ScopeUser, "7")
	require.NoError(t, err)
	assert.Equal(t, "day", pref.Value)

	pref, err = storage.Get(ctx, "calendar_time_scale", stationprefs.ScopeSystem, "")
	require.NoError(t, err)
	assert.Equal(t, "month", pref.Value)

	_, err = storage.Get(ctx, "calendar_time_scale", stationprefs.ScopeUser, "9")
	assert.ErrorIs(t, err, stationprefs.ErrNotFound)
}

func TestSQLiteStorage_List(t *testing.T) {
	storage, _ := setupSQLiteTest(t)
	ctx := context.Background()

	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "phone", Value: "555"}))
	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "email", Value: "a@b.c"}))
	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "library_num_entries", Scope: stationprefs.ScopeUser, OwnerID: "7", Value: "25"}))

	system, err := storage.List(ctx, stationprefs.ScopeSystem, "")
	require.NoError(t, err)
	require.Len(t, system, 2)
	assert.Equal(t, "email", system[0].Key)
	assert.Equal(t, "phone", system[1].Key)

	user, err := storage.List(ctx, stationprefs.ScopeUser, "7")
	require.NoError(t, err)
	require.Len(t, user, 1)
	assert.Equal(t, "25", user[0].Value)

	none, err := storage.List(ctx, stationprefs.ScopeUser, "99")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStorage_ReopenKeepsData(t *testing.T) {
	storage, path := setupSQLiteTest(t)
	ctx := context.Background()
	require.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "uniqueId", Value: "abc"}))

	// a second open runs the migrations again and must find them applied
	again, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer again.Close()

	pref, err := again.Get(ctx, "uniqueId", stationprefs.ScopeSystem, "")
	require.NoError(t, err)
	assert.Equal(t, "abc", pref.Value)
}

func TestSQLiteStorage_Concurrency(t *testing.T) {
	storage, _ := setupSQLiteTest(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, storage.Upsert(ctx, &stationprefs.Preference{Key: "station_name", Value: fmt.Sprintf("v%d", i)}))
		}(i)
	}
	wg.Wait()

	all, err := storage.List(ctx, stationprefs.ScopeSystem, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStorage_ThroughStore(t *testing.T) {
	storage, _ := setupSQLiteTest(t)
	store := stationprefs.New(stationprefs.WithStorage(storage))
	ctx := stationprefs.WithIdentity(context.Background(), "7")

	require.NoError(t, store.SetStationName(ctx, "Radio X"))
	require.NoError(t, store.SetCalendarTimeScale(ctx, "week"))

	name, err := store.GetStationName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Radio X", name)

	scale, err := store.GetCalendarTimeScale(ctx)
	require.NoError(t, err)
	assert.Equal(t, "week", scale)
}
