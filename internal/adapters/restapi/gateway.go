package restapi

// Package restapi implements ports.AuthGateway against the JobDesk REST API.
// Each use-case maps to exactly one remote call; every failure is converted
// into a typed *errors.AppError before it reaches the session controller.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
	apperr "github.com/jobdesk/jobdesk-go/internal/errors"
	"github.com/jobdesk/jobdesk-go/internal/ports"
)

// Config describes how to reach the remote API.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:5000/api".
	BaseURL string
	// HTTPClient is optional; a client with a 30s timeout is used by default.
	HTTPClient *http.Client
}

// Gateway is a stateless HTTP adapter for the remote auth endpoints.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.AuthGateway = (*Gateway)(nil)

// NewGateway constructs a Gateway from Config.
func NewGateway(cfg Config) (*Gateway, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("restapi: BaseURL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Gateway{
		baseURL:    base,
		httpClient: httpClient,
	}, nil
}

// authResponse is the wire shape of login/register successes.
type authResponse struct {
	Success bool                `json:"success"`
	Token   string              `json:"token"`
	User    domainauth.Identity `json:"user"`
	Message string              `json:"message,omitempty"`
}

// meResponse is the wire shape of GET /auth/me.
type meResponse struct {
	Data domainauth.Identity `json:"data"`
}

// messageResponse is the wire shape of the password reset endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the wire shape of API failures.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Login exchanges credentials for an identity and bearer token.
func (g *Gateway) Login(ctx context.Context, creds domainauth.Credentials) (ports.AuthResult, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}

	var resp authResponse
	if err := g.do(ctx, http.MethodPost, "/auth/login", body, "", &resp, classifyLogin); err != nil {
		return ports.AuthResult{}, err
	}
	return ports.AuthResult{Identity: resp.User, Token: resp.Token}, nil
}

// Register creates an account. Admin cannot be self-registered; the check is
// client-side so the mistake never leaves the process.
func (g *Gateway) Register(ctx context.Context, reg domainauth.Registration) (ports.AuthResult, error) {
	if !reg.Role.SelfService() {
		return ports.AuthResult{}, apperr.ValidationField("role", "Role must be jobseeker or employer.")
	}

	body := map[string]string{
		"name":     reg.Name,
		"email":    reg.Email,
		"password": reg.Password,
		"role":     string(reg.Role),
	}

	var resp authResponse
	if err := g.do(ctx, http.MethodPost, "/auth/register", body, "", &resp, classifyRegister); err != nil {
		return ports.AuthResult{}, err
	}
	return ports.AuthResult{Identity: resp.User, Token: resp.Token}, nil
}

// Logout requests best-effort server-side invalidation of the token.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	var resp struct{}
	return g.do(ctx, http.MethodGet, "/auth/logout", nil, token, &resp, classifyDefault)
}

// FetchIdentity resolves the identity behind a bearer token.
func (g *Gateway) FetchIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	var resp meResponse
	if err := g.do(ctx, http.MethodGet, "/auth/me", nil, token, &resp, classifyDefault); err != nil {
		return domainauth.Identity{}, err
	}
	return resp.Data, nil
}

// RequestPasswordReset asks for a reset email. The server replies with the
// same generic confirmation whether or not the email is registered, and the
// message is passed through untouched (anti-enumeration).
func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}

	var resp messageResponse
	if err := g.do(ctx, http.MethodPost, "/auth/forgot-password", body, "", &resp, classifyDefault); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ConfirmPasswordReset sets a new password using a reset token.
func (g *Gateway) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	body := map[string]string{"token": token, "password": newPassword}

	var resp messageResponse
	if err := g.do(ctx, http.MethodPost, "/auth/reset-password", body, "", &resp, classifyReset); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// do performs one API call and decodes the success body into out.
// classify maps non-2xx responses to typed errors.
func (g *Gateway) do(ctx context.Context, method, path string, body any, token string, out any, classify func(status int, apiErr errorResponse) *apperr.AppError) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(err, apperr.ErrCodeUnknown, "Something went wrong. Please try again.")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrCodeUnknown, "Something went wrong. Please try again.")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrCodeNetwork, "Could not reach the server. Please check your connection and try again.")
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperr.Wrap(err, apperr.ErrCodeNetwork, "Could not reach the server. Please check your connection and try again.")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		// Body may not be JSON on proxy errors; classification falls back to status.
		_ = json.Unmarshal(data, &apiErr)
		return classify(resp.StatusCode, apiErr)
	}

	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Wrap(err, apperr.ErrCodeUnknown, "The server returned an unexpected response.")
	}
	return nil
}

func classifyLogin(status int, apiErr errorResponse) *apperr.AppError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.InvalidCredentials(messageOr(apiErr, "Invalid email or password."))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperr.Validation(messageOr(apiErr, "Please check the entered values."))
	default:
		return classifyDefault(status, apiErr)
	}
}

func classifyRegister(status int, apiErr errorResponse) *apperr.AppError {
	switch {
	case status == http.StatusConflict || containsFold(apiErr, "exist"):
		return apperr.DuplicateEmail(messageOr(apiErr, "An account with this email already exists."))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperr.Validation(messageOr(apiErr, "Please check the entered values."))
	default:
		return classifyDefault(status, apiErr)
	}
}

func classifyReset(status int, apiErr errorResponse) *apperr.AppError {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusGone:
		if containsFold(apiErr, "password") {
			return apperr.WeakPassword(messageOr(apiErr, "Password does not meet the security requirements."))
		}
		return apperr.InvalidResetToken(messageOr(apiErr, "This reset link is invalid or has expired."))
	default:
		return classifyDefault(status, apiErr)
	}
}

func classifyDefault(status int, apiErr errorResponse) *apperr.AppError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.Unauthorized(messageOr(apiErr, "Your session has expired. Please log in again."))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperr.Validation(messageOr(apiErr, "Please check the entered values."))
	case status >= 500:
		return apperr.Network(messageOr(apiErr, "The server is unavailable. Please try again later."))
	default:
		return apperr.Unknownf("Unexpected response from server (%d).", status)
	}
}

func messageOr(apiErr errorResponse, fallback string) string {
	if apiErr.Error != "" {
		return apiErr.Error
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func containsFold(apiErr errorResponse, substr string) bool {
	msg := apiErr.Error
	if msg == "" {
		msg = apiErr.Message
	}
	return strings.Contains(strings.ToLower(msg), substr)
}
