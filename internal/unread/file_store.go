package unread

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const unreadFileName = "unread_ids.json"

// FileStore persists the unread-id set as a JSON array in the state
// directory, guarded by a directory lock so concurrently running
// instances do not clobber each other's writes.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store under the given state dir.
func NewFileStore(stateDir string) (*FileStore, error) {
	if stateDir == "" {
		return nil, fmt.Errorf("file store: state dir cannot be empty")
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: create state dir: %w", err)
	}
	return &FileStore{path: filepath.Join(stateDir, unreadFileName)}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) lockDir() string {
	return s.path + ".lock"
}

// Load reads the persisted id set. Missing, unreadable, or corrupt files
// degrade to an empty set: losing unread hints is preferable to a crash.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return []string{}, nil
	}
	return ids, nil
}

// Save persists the full id set, replacing the previous one. The write
// goes through a temp file and rename so readers never observe a torn
// JSON document.
func (s *FileStore) Save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("file store: marshal ids: %w", err)
	}
	return withLock(s.lockDir(), func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("file store: write temp file: %w", err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("file store: replace unread file: %w", err)
		}
		return nil
	})
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}
