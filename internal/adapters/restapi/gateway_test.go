package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
	apperr "github.com/jobdesk/jobdesk-go/internal/errors"
)

func newTestGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGateway(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return g
}

func TestNewGateway_RequiresBaseURL(t *testing.T) {
	_, err := NewGateway(Config{})
	require.Error(t, err)

	_, err = NewGateway(Config{BaseURL: "   "})
	require.Error(t, err)
}

func TestNewGateway_TrimsTrailingSlash(t *testing.T) {
	g, err := NewGateway(Config{BaseURL: "http://localhost:5000/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", g.baseURL)
}

func TestGateway_Login_Success(t *testing.T) {
	var gotBody map[string]string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		writeJSON(w, http.StatusOK, authResponse{
			Success: true,
			Token:   "T1",
			User:    domainauth.Identity{ID: "u1", Name: "Amina", Email: "a@x.com", Role: domainauth.RoleJobseeker},
		})
	}))

	res, err := g.Login(context.Background(), domainauth.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "T1", res.Token)
	assert.Equal(t, "u1", res.Identity.ID)
	assert.Equal(t, domainauth.RoleJobseeker, res.Identity.Role)
	assert.Equal(t, map[string]string{"email": "a@x.com", "password": "secret1"}, gotBody)
}

func TestGateway_Login_InvalidCredentials(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})
	}))

	_, err := g.Login(context.Background(), domainauth.Credentials{Email: "a@x.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidCredentials(err))
	assert.Equal(t, "Invalid email or password", apperr.UserMessage(err))
}

func TestGateway_Login_ServerError(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := g.Login(context.Background(), domainauth.Credentials{Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeNetwork, apperr.GetCode(err))
}

func TestGateway_Login_NetworkFailure(t *testing.T) {
	// A closed server gives us a real connection refusal.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g, err := NewGateway(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Login(context.Background(), domainauth.Credentials{Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeNetwork, apperr.GetCode(err))
}

func TestGateway_Register_Success(t *testing.T) {
	var gotBody map[string]string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		writeJSON(w, http.StatusCreated, authResponse{
			Success: true,
			Token:   "T2",
			User:    domainauth.Identity{ID: "u2", Role: domainauth.RoleEmployer},
		})
	}))

	res, err := g.Register(context.Background(), domainauth.Registration{
		Name:     "Acme HR",
		Email:    "hr@acme.com",
		Password: "secret1",
		Role:     domainauth.RoleEmployer,
	})
	require.NoError(t, err)
	assert.Equal(t, "T2", res.Token)
	assert.Equal(t, "employer", gotBody["role"])
}

func TestGateway_Register_DuplicateEmail(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "User already exists"})
	}))

	_, err := g.Register(context.Background(), domainauth.Registration{
		Name: "X", Email: "a@x.com", Password: "secret1", Role: domainauth.RoleJobseeker,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsDuplicateEmail(err))
}

func TestGateway_Register_DuplicateEmailByMessage(t *testing.T) {
	// Some deployments answer 400 with an "exists" message instead of 409.
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "An account with this email already exists"})
	}))

	_, err := g.Register(context.Background(), domainauth.Registration{
		Name: "X", Email: "a@x.com", Password: "secret1", Role: domainauth.RoleJobseeker,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsDuplicateEmail(err))
}

func TestGateway_Register_AdminRejectedLocally(t *testing.T) {
	var called bool
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := g.Register(context.Background(), domainauth.Registration{
		Name: "X", Email: "a@x.com", Password: "secret1", Role: domainauth.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeValidation, apperr.GetCode(err))
	assert.Equal(t, "role", apperr.GetField(err))
	assert.False(t, called, "admin registration must not reach the network")
}

func TestGateway_FetchIdentity_Success(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, meResponse{
			Data: domainauth.Identity{ID: "u1", Name: "Amina", Role: domainauth.RoleJobseeker, EmailVerified: true},
		})
	}))

	id, err := g.FetchIdentity(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.True(t, id.EmailVerified)
}

func TestGateway_FetchIdentity_Expired(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authorized"})
	}))

	_, err := g.FetchIdentity(context.Background(), "stale")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestGateway_Logout_SendsToken(t *testing.T) {
	var gotAuth string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
	}))

	require.NoError(t, g.Logout(context.Background(), "T1"))
	assert.Equal(t, "Bearer T1", gotAuth)
}

func TestGateway_RequestPasswordReset_PassesMessageThrough(t *testing.T) {
	const neutral = "If an account with that email exists, a reset link has been sent."
	var gotBody map[string]string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/forgot-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, http.StatusOK, messageResponse{Message: neutral})
	}))

	// The gateway must not editorialize: registered or not, the caller sees
	// exactly the server's neutral confirmation.
	msg, err := g.RequestPasswordReset(context.Background(), "whoever@x.com")
	require.NoError(t, err)
	assert.Equal(t, neutral, msg)
	assert.Equal(t, map[string]string{"email": "whoever@x.com"}, gotBody)
}

func TestGateway_ConfirmPasswordReset_Success(t *testing.T) {
	var gotBody map[string]string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/reset-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated"})
	}))

	msg, err := g.ConfirmPasswordReset(context.Background(), "reset-tok", "newsecret1")
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg)
	assert.Equal(t, "reset-tok", gotBody["token"])
	assert.Equal(t, "newsecret1", gotBody["password"])
}

func TestGateway_ConfirmPasswordReset_Classification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     errorResponse
		wantCode apperr.ErrorCode
	}{
		{"expired token", http.StatusBadRequest, errorResponse{Error: "Invalid or expired token"}, apperr.ErrCodeInvalidResetToken},
		{"gone token", http.StatusGone, errorResponse{Error: "Token expired"}, apperr.ErrCodeInvalidResetToken},
		{"weak password", http.StatusBadRequest, errorResponse{Error: "Password must be at least 6 characters"}, apperr.ErrCodeWeakPassword},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			}))

			_, err := g.ConfirmPasswordReset(context.Background(), "tok", "pw")
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, apperr.GetCode(err))
		})
	}
}

func TestGateway_NonJSONErrorBody(t *testing.T) {
	// Proxies answer with HTML; classification must fall back to the status.
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>upstream down</html>"))
	}))

	_, err := g.FetchIdentity(context.Background(), "T1")
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeNetwork, apperr.GetCode(err))
}

func TestGateway_ContextCancellation(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Login(ctx, domainauth.Credentials{Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeNetwork, apperr.GetCode(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
