package redis

// Package redis provides a Redis-backed token store for deployments where
// the client's durable storage is shared (kiosk/terminal setups).

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jobdesk/jobdesk-go/internal/ports"
)

const defaultKey = "jobdesk:token"

// TokenStore persists the credential token under a fixed Redis key.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a Redis-backed token store using the default key.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithKey(client, defaultKey)
}

// NewTokenStoreWithKey creates a Redis token store with a custom key, so
// multiple profiles can coexist on one Redis instance.
func NewTokenStoreWithKey(client redis.UniversalClient, key string) *TokenStore {
	if key == "" {
		key = defaultKey
	}
	return &TokenStore{
		client: client,
		key:    key,
	}
}

// Save stores the token, replacing any previous value. No TTL: the token's
// validity is owned by the remote service, not the storage.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	return s.client.Set(ctx, s.key, token, 0).Err()
}

// Load retrieves the stored token.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoToken
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", ports.ErrNoToken
	}
	return token, nil
}

// Delete removes the stored token. Deleting an absent token is not an error.
func (s *TokenStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
