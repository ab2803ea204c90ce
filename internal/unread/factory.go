package unread

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/activity-tray/internal/colors"
	"github.com/cristianoliveira/activity-tray/internal/config"
)

const (
	// BackendFile selects the JSON-file store.
	BackendFile = "file"
	// BackendSQLite selects the SQLite-backed store.
	BackendSQLite = "sqlite"
)

// NewStoreFromConfig creates an unread store based on configuration.
func NewStoreFromConfig() (Store, error) {
	config.Load()
	backend := config.Get("unread_backend", BackendFile)
	stateDir := config.Get("state_dir", "")
	return NewStoreForBackend(backend, stateDir)
}

// NewStoreForBackend creates an unread store for the provided backend
// name. A failing sqlite init falls back to the file store rather than
// erroring out; unread tracking should never block the tool.
func NewStoreForBackend(backend, stateDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(stateDir)
	case BackendSQLite:
		dbPath := filepath.Join(stateDir, unreadDBFileName)
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite unread store, falling back to file: %v", err))
			return NewFileStore(stateDir)
		}
		return store, nil
	default:
		colors.Warning(fmt.Sprintf("unknown unread backend '%s', falling back to file", backend))
		return NewFileStore(stateDir)
	}
}
