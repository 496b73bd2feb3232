package credstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the credential in a single file under the user's config
// directory, the closest analog to a browser-profile-scoped storage slot. It
// survives process restarts and is removed only by Clear.
type FileStore struct {
	path string
}

// NewFileStore builds a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Set writes the token, creating parent directories as needed. The file is
// owner-readable only.
func (s *FileStore) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Get returns the stored token, or "" when the slot is empty.
func (s *FileStore) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the slot. Clearing an already-empty slot is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
