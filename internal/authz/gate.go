package authz

// Package authz holds the routing-time authorization gate and the static
// role route table. The gate is the sole enforcement point; the route table
// only drives navigation rendering.

import (
	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
)

// Kind enumerates the possible outcomes of a gate decision.
type Kind string

const (
	// Render allows the protected content to be shown.
	Render Kind = "render"
	// RedirectLogin sends the user to the login surface, carrying the
	// originally requested path so they can be returned after login.
	RedirectLogin Kind = "redirect_login"
	// RedirectUnauthorized sends an authenticated but role-mismatched user
	// to the unauthorized surface.
	RedirectUnauthorized Kind = "redirect_unauthorized"
	// Pending means the startup session restore has not resolved yet; the
	// caller must show a neutral loading state, never the protected content
	// and never a redirect.
	Pending Kind = "pending"
)

// Decision is the result of evaluating a protected route against a snapshot.
type Decision struct {
	Kind Kind
	// RedirectTo is the target path for redirect decisions.
	RedirectTo string
	// From is the originally requested path, carried on login redirects.
	From string
}

// Decide evaluates whether the session snapshot may reach a route.
// requiredRoles nil or empty means the route only requires authentication.
// Unknown roles are treated as unprivileged: they fail every role-constrained
// route and pass unconstrained ones like any authenticated user.
func Decide(snap domainauth.Snapshot, requiredRoles []domainauth.Role, requested string) Decision {
	// During the startup restore no protected content may render and no
	// redirect may fire: a redirect here would bounce a user whose session
	// is about to be restored.
	if snap.Loading && !snap.Booted {
		return Decision{Kind: Pending, From: requested}
	}

	if !snap.Authenticated {
		return Decision{Kind: RedirectLogin, RedirectTo: LoginPath, From: requested}
	}

	if len(requiredRoles) > 0 && !roleAllowed(snap.Role(), requiredRoles) {
		return Decision{Kind: RedirectUnauthorized, RedirectTo: UnauthorizedPath, From: requested}
	}

	return Decision{Kind: Render}
}

func roleAllowed(role domainauth.Role, allowed []domainauth.Role) bool {
	if !role.Known() {
		return false
	}
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
