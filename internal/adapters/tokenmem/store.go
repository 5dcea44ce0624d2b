package tokenmem

// Package tokenmem keeps the credential token in process memory only.
// Sessions do not survive a restart; used for tests and ephemeral runs.

import (
	"context"
	"errors"
	"sync"

	"github.com/jobdesk/jobdesk-go/internal/ports"
)

// Store is an in-memory token store.
type Store struct {
	mu    sync.Mutex
	token string
	set   bool
}

var _ ports.TokenStore = (*Store)(nil)

// NewStore creates an empty in-memory token store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	s.mu.Lock()
	s.token = token
	s.set = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", ports.ErrNoToken
	}
	return s.token, nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.set = false
	s.mu.Unlock()
	return nil
}
