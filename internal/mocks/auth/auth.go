package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
	"github.com/jobdesk/jobdesk-go/internal/observability/statsd"
	"github.com/jobdesk/jobdesk-go/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthGateway = (*MockGateway)(nil)
	_ ports.TokenStore  = (*MemoryTokenStore)(nil)
	_ statsd.Sink       = (*RecorderSink)(nil)
)

// MockGateway simulates the remote auth API for tests. Each method defers to
// the corresponding func field when set; otherwise it returns a deterministic
// success built from DefaultIdentity and DefaultToken.
type MockGateway struct {
	LoginFunc                func(ctx context.Context, creds domainauth.Credentials) (ports.AuthResult, error)
	RegisterFunc             func(ctx context.Context, reg domainauth.Registration) (ports.AuthResult, error)
	LogoutFunc               func(ctx context.Context, token string) error
	FetchIdentityFunc        func(ctx context.Context, token string) (domainauth.Identity, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) (string, error)
	ConfirmPasswordResetFunc func(ctx context.Context, token, newPassword string) (string, error)

	DefaultIdentity domainauth.Identity
	DefaultToken    string

	mu    sync.Mutex
	calls []string
}

// NewMockGateway creates a MockGateway with sensible defaults.
func NewMockGateway() *MockGateway {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	return &MockGateway{
		DefaultIdentity: domainauth.Identity{
			ID:            "user-1",
			Name:          "Mock User",
			Email:         "mock.user@example.com",
			Role:          domainauth.RoleJobseeker,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		DefaultToken: "mock-token-1",
	}
}

// Calls returns the method names invoked so far, in order.
func (m *MockGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockGateway) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
}

func (m *MockGateway) Login(ctx context.Context, creds domainauth.Credentials) (ports.AuthResult, error) {
	m.record("Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return ports.AuthResult{Identity: m.DefaultIdentity, Token: m.DefaultToken}, nil
}

func (m *MockGateway) Register(ctx context.Context, reg domainauth.Registration) (ports.AuthResult, error) {
	m.record("Register")
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	identity := m.DefaultIdentity
	identity.Name = reg.Name
	identity.Email = reg.Email
	identity.Role = reg.Role
	return ports.AuthResult{Identity: identity, Token: m.DefaultToken}, nil
}

func (m *MockGateway) Logout(ctx context.Context, token string) error {
	m.record("Logout")
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockGateway) FetchIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	m.record("FetchIdentity")
	if m.FetchIdentityFunc != nil {
		return m.FetchIdentityFunc(ctx, token)
	}
	return m.DefaultIdentity, nil
}

func (m *MockGateway) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	m.record("RequestPasswordReset")
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return "If an account exists for that email, a reset link has been sent.", nil
}

func (m *MockGateway) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	m.record("ConfirmPasswordReset")
	if m.ConfirmPasswordResetFunc != nil {
		return m.ConfirmPasswordResetFunc(ctx, token, newPassword)
	}
	return "Your password has been reset.", nil
}

// MemoryTokenStore is an in-memory token store for unit tests.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	saved bool

	SaveErr   error
	LoadErr   error
	DeleteErr error
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// NewMemoryTokenStoreWith creates a store pre-seeded with a token.
func NewMemoryTokenStoreWith(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token, saved: true}
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}
	m.mu.Lock()
	m.token = token
	m.saved = true
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokenStore) Load(_ context.Context) (string, error) {
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return "", ports.ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryTokenStore) Delete(_ context.Context) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	m.token = ""
	m.saved = false
	m.mu.Unlock()
	return nil
}

// Stored returns the persisted token, or empty when absent.
func (m *MemoryTokenStore) Stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// RecorderSink records statsd emissions for assertions.
type RecorderSink struct {
	mu      sync.Mutex
	Counts  []RecordedMetric
	Timings []RecordedMetric
}

// RecordedMetric is one captured emission.
type RecordedMetric struct {
	Name  string
	Value int64
	Tags  map[string]string
}

func (r *RecorderSink) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	r.Counts = append(r.Counts, RecordedMetric{Name: name, Value: value, Tags: tags})
	r.mu.Unlock()
}

func (r *RecorderSink) Timing(name string, value time.Duration, tags map[string]string) {
	r.mu.Lock()
	r.Timings = append(r.Timings, RecordedMetric{Name: name, Value: int64(value), Tags: tags})
	r.mu.Unlock()
}
