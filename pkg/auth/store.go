package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// Store persists the bearer token to a single file. An absent or empty
// file means unauthenticated. The token is the only client state that
// survives restarts.
type Store struct {
	path string

	mu    sync.Mutex
	token string
}

// DefaultTokenPath returns the token file location under the user's
// config directory.
func DefaultTokenPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "taskdeck", "token"), nil
}

// NewStore creates a store backed by the given file and reads any
// existing token into memory.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}

	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the current token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Save persists a new token, replacing the file atomically.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	if err := atomic.WriteFile(s.path, strings.NewReader(token+"\n")); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	// atomic.WriteFile doesn't set permissions for new files.
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("chmod token file: %w", err)
	}

	s.token = token
	return nil
}

// Clear forgets the token and removes the file. Clearing an already
// empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
