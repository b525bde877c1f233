// Package auth holds the client's authentication state: at most one bearer
// token per session, hydrated on demand from local key-value storage.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"Vitrin/internal/cli/repo"

	"go.uber.org/zap"
)

// Store is the single source of truth for the current token.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	token   *string
	storage repo.KeyValueStore
	logger  *zap.SugaredLogger
}

// NewStore creates a store with no token. storage may be nil, in which case
// hydration never finds anything.
func NewStore(storage repo.KeyValueStore, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{storage: storage, logger: logger}
}

// SetToken replaces the held token. The value is not validated or persisted.
func (s *Store) SetToken(v string) {
	s.mu.Lock()
	s.token = &v
	s.mu.Unlock()
}

// ClearToken drops the held token.
func (s *Store) ClearToken() {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()
}

// Token returns the held token and whether one is present.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return "", false
	}
	return *s.token, true
}

// IsAuthenticated reports whether a non-empty token is held.
func (s *Store) IsAuthenticated() bool {
	t, ok := s.Token()
	return ok && t != ""
}

// HydrateToken copies the persisted token into memory. When storage has
// nothing, or cannot be read, the in-memory token is left as is.
func (s *Store) HydrateToken() {
	if s.storage == nil {
		return
	}
	v, err := s.storage.GetItem(repo.KeyTokenStorage)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logger.Warnw("token storage unavailable, treating as empty", "error", err)
		}
		return
	}
	if v == "" {
		return
	}
	s.SetToken(v)
}

// Login persists the token and makes it current.
func (s *Store) Login(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if s.storage != nil {
		if err := s.storage.SetItem(repo.KeyTokenStorage, token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}
	s.SetToken(token)
	return nil
}

// Logout removes the persisted token and clears the in-memory one.
// The in-memory token is cleared even if storage fails.
func (s *Store) Logout() error {
	s.ClearToken()
	if s.storage == nil {
		return nil
	}
	if err := s.storage.RemoveItem(repo.KeyTokenStorage); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
