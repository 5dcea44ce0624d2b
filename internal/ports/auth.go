package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/session.

import (
	"context"

	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
)

// AuthResult is the payload of a successful credential exchange.
type AuthResult struct {
	Identity domainauth.Identity
	Token    string
}

// AuthGateway translates each auth use-case into exactly one remote call.
// It is stateless: it never reads or writes session state or durable storage,
// and every failure is returned as a typed *errors.AppError.
type AuthGateway interface {
	// Login exchanges credentials for an identity and bearer token.
	Login(ctx context.Context, creds domainauth.Credentials) (AuthResult, error)

	// Register creates an account and returns the identity and bearer token.
	// Only self-service roles are accepted.
	Register(ctx context.Context, reg domainauth.Registration) (AuthResult, error)

	// Logout requests best-effort server-side invalidation of the token.
	Logout(ctx context.Context, token string) error

	// FetchIdentity resolves the identity behind a bearer token.
	// Used for the startup session restore and for manual refresh.
	FetchIdentity(ctx context.Context, token string) (domainauth.Identity, error)

	// RequestPasswordReset asks for a reset email. The returned message is
	// intentionally identical whether or not the email is registered.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset sets a new password using a reset token.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error)
}

// TokenStore persists the durable credential token between process runs.
// Absence of a stored token means "anonymous".
type TokenStore interface {
	// Save stores the token, replacing any previous value.
	Save(ctx context.Context, token string) error

	// Load retrieves the stored token. Returns ErrNoToken when absent.
	Load(ctx context.Context) (string, error)

	// Delete removes the stored token. Deleting an absent token is not an error.
	Delete(ctx context.Context) error
}

// ProfileResetter clears profile-adjacent caches when a session ends.
// The session controller invokes it on logout and on failed session restore.
type ProfileResetter interface {
	ResetProfile()
}

// ProfileResetterFunc adapts a plain function to the ProfileResetter interface.
type ProfileResetterFunc func()

func (f ProfileResetterFunc) ResetProfile() { f() }

// ErrNoToken is returned by TokenStore.Load when no token is persisted.
type noTokenError struct{}

func (noTokenError) Error() string { return "no token stored" }

var ErrNoToken error = noTokenError{}
