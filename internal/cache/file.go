package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore stores entries as files in a directory. Freshness is judged by modification time.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates the directory if needed. An empty dir selects ~/.cache/github-card.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "github-card")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := s.path(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	ttl, err := s.readTTL(path)
	if err != nil {
		return nil, false, err
	}
	if ttl > 0 && s.now().Sub(info.ModTime()) > ttl {
		return nil, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	path := s.path(key)
	if err := os.WriteFile(path+".ttl", []byte(ttl.String()), 0o644); err != nil {
		return err
	}
	return os.WriteFile(path, value, 0o644)
}

func (s *FileStore) readTTL(path string) (time.Duration, error) {
	raw, err := os.ReadFile(path + ".ttl")
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return time.ParseDuration(string(raw))
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, Key(key))
}
