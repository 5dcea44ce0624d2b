package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and JSON transport.
// Valid values are defined as constants below.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Known reports whether the role is one of the three application roles.
// Unknown roles never carry privilege; callers must treat them as unprivileged.
func (r Role) Known() bool {
	switch r {
	case RoleJobseeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// SelfService reports whether the role may be chosen at registration time.
// Admin accounts are provisioned out of band and cannot self-register.
func (r Role) SelfService() bool {
	return r == RoleJobseeker || r == RoleEmployer
}

// Identity represents the authenticated user as returned by the remote API.
// It is replaced wholesale on every successful login/register/identity fetch;
// the avatar fields are the only sanctioned partial update (see session.Store).
type Identity struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	Avatar        string    `json:"avatar,omitempty"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Credentials are the inputs for a password login.
type Credentials struct {
	Email    string
	Password string
}

// Registration are the inputs for creating a new account.
// Role must be a self-service role.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Snapshot is the complete current authentication state exposed to consumers.
// Values are copies; mutating a Snapshot never affects the owning store.
type Snapshot struct {
	// Identity is nil while anonymous.
	Identity *Identity
	// Token is the opaque bearer credential, empty while anonymous.
	Token string
	// Authenticated is true iff Identity and Token are present and the last
	// session-mutating operation succeeded.
	Authenticated bool
	// Loading is true only while a gateway call is outstanding.
	Loading bool
	// Error holds the user-visible message of the last failed operation.
	Error string
	// SuccessMessage holds transient confirmation text (password reset flows).
	SuccessMessage string
	// Booted latches true once the startup session restore has resolved,
	// successfully or not. It never reverts.
	Booted bool
	// Seq is the store's operation sequence number at snapshot time.
	Seq uint64
}

// Anonymous reports whether the snapshot carries no session at all.
func (s Snapshot) Anonymous() bool {
	return s.Identity == nil && s.Token == "" && !s.Authenticated
}

// Role returns the identity's role, or the empty Role while anonymous.
func (s Snapshot) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
