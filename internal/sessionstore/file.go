// Package sessionstore provides the persistence surface for the console's
// active session. Every implementation keeps the session under two logical
// keys (the bearer token and the serialized user record) written together
// and cleared together.
package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/accessflow/accessflow/internal/core/domain"
)

// fileDocument is the on-disk shape. The original client kept "authToken"
// and "user" in browser storage; the file store keeps the same two keys in
// one JSON document so they can never diverge.
type fileDocument struct {
	AuthToken string      `json:"authToken"`
	User      domain.User `json:"user"`
}

// FileStore persists the session as a single JSON file. Save writes a temp
// file and renames it over the target, so a crash mid-write never leaves a
// partial session behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(fileDocument{AuthToken: session.Token, User: session.User}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}

	var doc fileDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	if doc.AuthToken == "" {
		return nil, nil
	}
	return &domain.Session{Token: doc.AuthToken, User: doc.User}, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
