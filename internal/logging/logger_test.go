package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/activity-tray/internal/config"
)

func TestInitDisabledReturnsNoop(t *testing.T) {
	log, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, log)
	require.NoError(t, log.Shutdown())
}

func TestInitWritesJSONToPerProcessFile(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("ACTIVITY_TRAY_STATE_DIR", stateDir)
	t.Setenv("XDG_CONFIG_HOME", stateDir)
	t.Setenv("ACTIVITY_TRAY_CONFIG_PATH", filepath.Join(stateDir, "missing.toml"))
	config.Load()

	log, err := Init(Config{Enabled: true, Level: "debug", Command: "test", PID: 42})
	require.NoError(t, err)
	log.Info("hello", "key", "value")
	require.NoError(t, log.Shutdown())

	entries, err := os.ReadDir(filepath.Join(stateDir, "logs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), "activity-tray_"))
	require.Contains(t, entries[0].Name(), "PID42")

	data, err := os.ReadFile(filepath.Join(stateDir, "logs", entries[0].Name()))
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)[0]), &record))
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "value", record["key"])
}

func TestLevelFiltering(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("ACTIVITY_TRAY_STATE_DIR", stateDir)
	t.Setenv("XDG_CONFIG_HOME", stateDir)
	t.Setenv("ACTIVITY_TRAY_CONFIG_PATH", filepath.Join(stateDir, "missing.toml"))
	config.Load()

	log, err := Init(Config{Enabled: true, Level: "warn", Command: "test", PID: 1})
	require.NoError(t, err)
	log.Debug("dropped")
	log.Warn("kept")
	require.NoError(t, log.Shutdown())

	entries, err := os.ReadDir(filepath.Join(stateDir, "logs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(stateDir, "logs", entries[0].Name()))
	require.NoError(t, err)
	require.NotContains(t, string(data), "dropped")
	require.Contains(t, string(data), "kept")
}

func TestWithAttachesFields(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("ACTIVITY_TRAY_STATE_DIR", stateDir)
	t.Setenv("XDG_CONFIG_HOME", stateDir)
	t.Setenv("ACTIVITY_TRAY_CONFIG_PATH", filepath.Join(stateDir, "missing.toml"))
	config.Load()

	log, err := Init(Config{Enabled: true, Level: "info", Command: "test", PID: 1})
	require.NoError(t, err)
	log.With("component", "bridge").Info("connected")
	require.NoError(t, log.Shutdown())

	entries, err := os.ReadDir(filepath.Join(stateDir, "logs"))
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(stateDir, "logs", entries[0].Name()))
	require.NoError(t, err)
	require.Contains(t, string(data), "bridge")
}
