package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
	apperr "github.com/jobdesk/jobdesk-go/internal/errors"
	"github.com/jobdesk/jobdesk-go/internal/observability/statsd"
	"github.com/jobdesk/jobdesk-go/internal/ports"
)

// ControllerOptions groups dependencies for Controller.
type ControllerOptions struct {
	Gateway ports.AuthGateway
	Tokens  ports.TokenStore
	Store   *Store
	Logger  *slog.Logger
	Metrics statsd.Sink           // optional
	Profile ports.ProfileResetter // optional, cleared on session end
}

// Controller sequences gateway calls with store mutation and durable token
// persistence. It is the only component allowed to touch both the store and
// the token storage. Session-mutating operations (boot, login, register) are
// serialized through the store's BeginAuth guard; a second request while one
// is outstanding fails with ErrOperationInFlight. Logout is exempt: it is
// always accepted and wins any race via the store's sequence barrier.
type Controller struct {
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	store   *Store
	logger  *slog.Logger
	metrics statsd.Sink
	profile ports.ProfileResetter

	refresh singleflight.Group
}

// NewController constructs a new Controller.
func NewController(opts ControllerOptions) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		gateway: opts.Gateway,
		tokens:  opts.Tokens,
		store:   opts.Store,
		logger:  logger,
		metrics: opts.Metrics,
		profile: opts.Profile,
	}
}

// Store exposes the underlying session store for read access and subscription.
func (c *Controller) Store() *Store {
	return c.store
}

// Boot attempts the one-time silent session restore from the persisted token.
// With no persisted token it completes immediately without any network call.
// A failed identity fetch falls back to anonymous quietly: the stale token is
// erased and no error message is surfaced (a first-time visitor should not see
// an alarm at startup). Boot always leaves the store marked as booted.
func (c *Controller) Boot(ctx context.Context) error {
	if c.store.Snapshot().Booted {
		return nil
	}
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.Timing("session.boot", time.Since(start), nil)
		}
	}()

	token, err := c.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoToken) {
			c.logger.WarnContext(ctx, "token storage unreadable, starting anonymous", "error", err)
		}
		c.store.MarkBooted()
		c.count("boot", "anonymous")
		return nil
	}

	op, err := c.store.BeginAuth()
	if err != nil {
		return err
	}

	identity, err := c.gateway.FetchIdentity(ctx, token)
	if err != nil {
		c.logger.DebugContext(ctx, "session restore failed, falling back to anonymous", "error", err)
		// Quiet fallback: no user-visible message at boot.
		c.store.CompleteAuthFailure(op, "")
		c.discardToken(ctx)
		c.store.MarkBooted()
		c.count("boot", "restore_failed")
		return nil
	}

	c.store.CompleteAuthSuccess(op, identity, token)
	c.store.MarkBooted()
	c.count("boot", "restored")
	return nil
}

// Login exchanges credentials for a session. On success the returned token is
// persisted before the store reports authenticated. On failure any previously
// persisted token is left untouched.
func (c *Controller) Login(ctx context.Context, creds domainauth.Credentials) error {
	return c.exchange(ctx, "login", func(ctx context.Context) (ports.AuthResult, error) {
		return c.gateway.Login(ctx, creds)
	})
}

// Register creates an account and establishes a session, identical in shape
// to Login.
func (c *Controller) Register(ctx context.Context, reg domainauth.Registration) error {
	return c.exchange(ctx, "register", func(ctx context.Context) (ports.AuthResult, error) {
		return c.gateway.Register(ctx, reg)
	})
}

func (c *Controller) exchange(ctx context.Context, opName string, call func(context.Context) (ports.AuthResult, error)) error {
	op, err := c.store.BeginAuth()
	if err != nil {
		return err
	}

	result, err := call(ctx)
	if err != nil {
		c.store.CompleteAuthFailure(op, apperr.UserMessage(err))
		c.count(opName, "failed")
		return err
	}

	if c.store.Superseded(op) {
		// A logout raced this operation and must win: stay anonymous and do
		// not re-persist the credential.
		c.count(opName, "superseded")
		return nil
	}

	if saveErr := c.tokens.Save(ctx, result.Token); saveErr != nil {
		// The in-memory session is still valid; only restore-on-restart is lost.
		c.logger.WarnContext(ctx, "persist token failed", "error", saveErr)
	}
	c.store.CompleteAuthSuccess(op, result.Identity, result.Token)
	c.count(opName, "ok")
	return nil
}

// Logout ends the session. The server-side invalidation is best effort and
// its outcome is ignored; the persisted token is erased and the store reset
// unconditionally, so the client becomes anonymous even if the network call
// fails or a login is still in flight.
func (c *Controller) Logout(ctx context.Context) {
	token := c.store.Snapshot().Token
	if token != "" {
		if err := c.gateway.Logout(ctx, token); err != nil {
			c.logger.WarnContext(ctx, "server-side logout failed, clearing session anyway", "error", err)
		}
	}
	c.discardToken(ctx)
	c.store.Reset()
	c.count("logout", "ok")
}

// RefreshIdentity re-fetches the identity behind the current token and
// replaces it wholesale. Concurrent refreshes are coalesced into one remote
// call. A failed refresh clears the session and the persisted token: the
// token is no longer trustworthy.
func (c *Controller) RefreshIdentity(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		token := c.store.Snapshot().Token
		if token == "" {
			return nil, apperr.Unauthorized("Not logged in.")
		}

		op, err := c.store.BeginAuth()
		if err != nil {
			return nil, err
		}

		identity, err := c.gateway.FetchIdentity(ctx, token)
		if err != nil {
			c.store.CompleteAuthFailure(op, apperr.UserMessage(err))
			c.discardToken(ctx)
			c.count("refresh", "failed")
			return nil, err
		}

		c.store.CompleteAuthSuccess(op, identity, token)
		c.count("refresh", "ok")
		return nil, nil
	})
	return err
}

// RequestPasswordReset asks the server to send a reset email. Only the
// error/success message fields are touched, never identity or token. The
// confirmation message is identical whether or not the email is registered.
func (c *Controller) RequestPasswordReset(ctx context.Context, email string) error {
	message, err := c.gateway.RequestPasswordReset(ctx, email)
	if err != nil {
		c.store.SetError(apperr.UserMessage(err))
		c.count("forgot_password", "failed")
		return err
	}
	c.store.SetSuccessMessage(message)
	c.count("forgot_password", "ok")
	return nil
}

// ConfirmPasswordReset sets a new password using a reset token. Like
// RequestPasswordReset it never touches identity or token.
func (c *Controller) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	message, err := c.gateway.ConfirmPasswordReset(ctx, token, newPassword)
	if err != nil {
		c.store.SetError(apperr.UserMessage(err))
		c.count("reset_password", "failed")
		return err
	}
	c.store.SetSuccessMessage(message)
	c.count("reset_password", "ok")
	return nil
}

// UpdateAvatar applies the avatar side-channel patch. It is not serialized
// with the main auth flow; the store drops it when no identity is present.
func (c *Controller) UpdateAvatar(avatar, avatarURL string) {
	c.store.UpdateAvatar(avatar, avatarURL)
}

// discardToken erases the persisted token and clears profile-adjacent caches.
func (c *Controller) discardToken(ctx context.Context) {
	if err := c.tokens.Delete(ctx); err != nil {
		c.logger.WarnContext(ctx, "delete persisted token failed", "error", err)
	}
	if c.profile != nil {
		c.profile.ResetProfile()
	}
}

func (c *Controller) count(op, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.Count("session.op", 1, map[string]string{"op": op, "outcome": outcome})
}
