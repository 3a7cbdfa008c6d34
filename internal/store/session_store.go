package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"notable/internal/types"
)

// SessionStore persists the auth session between runs, the way a browser
// client keeps it in local storage. A missing file means "no session".
type SessionStore interface {
	Load() (*types.Session, error)
	Save(session *types.Session) error
	Clear() error
}

type FileSessionStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if !session.Active() {
		return nil, nil
	}
	return &session, nil
}

func (s *FileSessionStore) Save(session *types.Session) error {
	if session == nil {
		return errors.New("session is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
