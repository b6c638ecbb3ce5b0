package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"chatterly/internal/config"
	"chatterly/internal/core"
)

const (
	appDir   = "chatterly"
	fileName = "session.json"
)

// FileStore keeps the session as a small JSON object on disk, keyed the same
// way the backend names it.
type FileStore struct {
	Config *config.Config

	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, fileName), nil
}

func (s *FileStore) Init(_ context.Context) error {
	if s.Config != nil && s.Config.SessionFile != "" {
		s.path = s.Config.SessionFile
		return nil
	}

	path, err := DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving session file: %w", err)
	}
	s.path = path
	return nil
}

func (s *FileStore) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[core.SessionTokenKey], nil
}

func (s *FileStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[core.SessionTokenKey] = token

	return s.write(values)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("corrupted session file %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	// Write to a temp file first so a crash never leaves half a token behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
