package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STATIONPREFS_STORAGE_DRIVER", "memory")
	t.Setenv("STATIONPREFS_CACHE_DRIVER", "none")
	t.Setenv("STATIONPREFS_NOTIFY_DRIVER", "none")
	t.Setenv("STATIONPREFS_TIMEZONE", "UTC")
	t.Setenv("STATIONPREFS_LOGGING_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSettingsCommand(t *testing.T) {
	out, err := run(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "station-name")
	assert.Contains(t, out, "calendar_time_scale")
}

func TestGetDefault(t *testing.T) {
	memoryEnv(t)

	out, err := run(t, "get", "enable-stream-conf")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "get", "no_such_key")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestSetGetAcrossRuns(t *testing.T) {
	memoryEnv(t)
	t.Setenv("STATIONPREFS_STORAGE_DRIVER", "sqlite")
	t.Setenv("STATIONPREFS_STORAGE_DSN", filepath.Join(t.TempDir(), "prefs.db"))

	_, err := run(t, "set", "station-name", "Radio Free Go")
	require.NoError(t, err)
	_, err = run(t, "--user", "7", "set", "calendar-time-scale", "week")
	require.NoError(t, err)

	out, err := run(t, "get", "station_name")
	require.NoError(t, err)
	assert.Equal(t, "Radio Free Go\n", out)

	out, err = run(t, "--user", "7", "get", "calendar-time-scale")
	require.NoError(t, err)
	assert.Equal(t, "week\n", out)

	out, err = run(t, "title")
	require.NoError(t, err)
	assert.Equal(t, "Radio Free Go - Airtime\n", out)

	out, err = run(t, "list", "--scope", "user", "--user", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "calendar_time_scale")
}

func TestSetRejectsUnknownTimezone(t *testing.T) {
	memoryEnv(t)

	_, err := run(t, "set", "timezone", "Atlantis/Lost")
	assert.Error(t, err)
}

func TestListRejectsBadScope(t *testing.T) {
	memoryEnv(t)

	_, err := run(t, "list", "--scope", "galaxy")
	assert.Error(t, err)
}

func TestTimeCommands(t *testing.T) {
	memoryEnv(t)

	out, err := run(t, "time", "duration", "3661000")
	require.NoError(t, err)
	assert.Equal(t, "01:01:01.0\n", out)

	out, err = run(t, "time", "seconds", "00:06:31.444")
	require.NoError(t, err)
	assert.Equal(t, "391.444\n", out)

	_, err = run(t, "time", "seconds", "00:06")
	assert.Error(t, err)

	out, err = run(t, "time", "strip", "01:02:03")
	require.NoError(t, err)
	assert.Equal(t, "01:02\n", out)

	out, err = run(t, "time", "diff", "2024-01-01 00:00:00", "2024-01-01 00:01:00")
	require.NoError(t, err)
	assert.Equal(t, "60\n", out)

	out, err = run(t, "time", "convert", "--to", "America/New_York", "2024-06-01 12:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 08:00:00\n", out)

	out, err = run(t, "time", "convert", "--from", "America/New_York", "2024-06-01 08:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 12:00:00\n", out)

	out, err = run(t, "time", "now")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "offset:    +00:00"), out)
}
