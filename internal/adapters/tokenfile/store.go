package tokenfile

// Package tokenfile persists the credential token in a single file, the
// local-client equivalent of browser localStorage.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobdesk/jobdesk-go/internal/ports"
)

const defaultFileName = "token"

// Store keeps the token in a 0600 file under a per-user config directory.
type Store struct {
	path string
}

var _ ports.TokenStore = (*Store)(nil)

// NewStore creates a file-backed token store at path. When path is empty the
// token lives at <user config dir>/jobdesk/token.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "jobdesk", defaultFileName)
	}
	return &Store{path: path}, nil
}

// Path returns the location of the token file.
func (s *Store) Path() string {
	return s.path
}

// Save writes the token, creating parent directories as needed.
func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Load reads the stored token. A missing or empty file means anonymous.
func (s *Store) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ports.ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ports.ErrNoToken
	}
	return token, nil
}

// Delete removes the token file. Deleting an absent token is not an error.
func (s *Store) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
