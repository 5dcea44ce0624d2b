package authz

import (
	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
)

// Well-known navigation targets.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Route describes a navigable surface of the application shell.
// Roles empty means the route only requires authentication.
type Route struct {
	Path  string
	Title string
	Roles []domainauth.Role
}

// routeTable is the flat, immutable role route table. It drives menu
// rendering only; access control lives in Decide. Keeping the two separate
// is deliberate: the nav list is advisory UX and must not grow into a second
// enforcement point that could drift from the gate.
var routeTable = []Route{
	{Path: "/dashboard", Title: "Dashboard"},
	{Path: "/profile", Title: "Profile"},

	{Path: "/jobseeker/profile", Title: "My Profile", Roles: []domainauth.Role{domainauth.RoleJobseeker}},
	{Path: "/jobseeker/dashboard", Title: "Overview", Roles: []domainauth.Role{domainauth.RoleJobseeker}},
	{Path: "/jobseeker/applications", Title: "My Applications", Roles: []domainauth.Role{domainauth.RoleJobseeker}},
	{Path: "/jobseeker/saved-jobs", Title: "Saved Jobs", Roles: []domainauth.Role{domainauth.RoleJobseeker}},

	{Path: "/employer/company-profile", Title: "Company Profile", Roles: []domainauth.Role{domainauth.RoleEmployer}},
	{Path: "/employer/company-preview", Title: "Company Preview", Roles: []domainauth.Role{domainauth.RoleEmployer}},
	{Path: "/employer/dashboard", Title: "Overview", Roles: []domainauth.Role{domainauth.RoleEmployer}},
	{Path: "/employer/applications", Title: "Applications", Roles: []domainauth.Role{domainauth.RoleEmployer}},

	{Path: "/admin/profile", Title: "My Profile", Roles: []domainauth.Role{domainauth.RoleAdmin}},
	{Path: "/admin/dashboard", Title: "Overview", Roles: []domainauth.Role{domainauth.RoleAdmin}},
	{Path: "/admin/categories", Title: "Categories", Roles: []domainauth.Role{domainauth.RoleAdmin}},
}

// DefaultPath resolves a role to its landing surface. Absent or unknown
// roles land on the login page.
func DefaultPath(role domainauth.Role) string {
	switch role {
	case domainauth.RoleJobseeker:
		return "/jobseeker/profile"
	case domainauth.RoleEmployer:
		return "/employer/company-profile"
	case domainauth.RoleAdmin:
		return "/admin/profile"
	default:
		return LoginPath
	}
}

// NavigableRoutes returns the ordered set of routes the given role may see
// in the navigation shell. Unknown roles see only the unconstrained entries
// when authenticated; callers pass the role from an authenticated snapshot.
func NavigableRoutes(role domainauth.Role) []Route {
	routes := make([]Route, 0, len(routeTable))
	for _, r := range routeTable {
		if len(r.Roles) == 0 || roleAllowed(role, r.Roles) {
			routes = append(routes, r)
		}
	}
	return routes
}

// RequiredRoles looks up the role constraint for a path, for callers that
// evaluate the gate from a path rather than a route descriptor. The second
// return is false when the path is not in the table.
func RequiredRoles(path string) ([]domainauth.Role, bool) {
	for _, r := range routeTable {
		if r.Path == path {
			return r.Roles, true
		}
	}
	return nil, false
}
