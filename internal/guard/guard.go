// Package guard decides whether a session may open a portal route.
package guard

import (
	"net/url"
	"strings"

	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
)

// LoginPath is the public sign-in route.
const LoginPath = "/login"

// Outcome is the result of evaluating a navigation.
type Outcome int

const (
	// Loading means the session is still being validated: render a placeholder, do not redirect.
	Loading Outcome = iota
	// Unauthenticated redirects to the login route carrying the requested path.
	Unauthenticated
	// Forbidden redirects to the session role's own root.
	Forbidden
	// Authorized renders the route.
	Authorized
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	}
	return "unknown"
}

// Route is the metadata of a guarded route.
type Route struct {
	Path         string
	RequireAuth  bool
	AllowedRoles []models.Role
}

// Decision is the outcome of a navigation and, for redirects, where to go.
type Decision struct {
	Outcome  Outcome
	Redirect string
}

// Evaluate is a pure function of the session state and the route metadata.
func Evaluate(state session.State, route Route) Decision {
	if state.Loading {
		return Decision{Outcome: Loading}
	}
	if route.RequireAuth && !state.IsAuthenticated() {
		return Decision{Outcome: Unauthenticated, Redirect: LoginRedirect(route.Path)}
	}
	if len(route.AllowedRoles) > 0 && state.Identity != nil && !hasRole(route.AllowedRoles, state.Identity.Role) {
		return Decision{Outcome: Forbidden, Redirect: RootFor(state.Identity.Role)}
	}
	return Decision{Outcome: Authorized}
}

// RootFor returns the dashboard root of role; unknown roles go to the login route.
func RootFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RoleTeacher:
		return "/teacher"
	case models.RoleStudent:
		return "/student"
	}
	return LoginPath
}

// LoginRedirect builds the login location remembering the requested path.
func LoginRedirect(from string) string {
	if from == "" || from == LoginPath {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}

// SafeReturnPath accepts a remembered path only when it is a local portal path.
func SafeReturnPath(from string) (string, bool) {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.Contains(from, `\`) {
		return "", false
	}
	if from == LoginPath || strings.HasPrefix(from, LoginPath+"?") || strings.HasPrefix(from, LoginPath+"/") {
		return "", false
	}
	return from, true
}

// Sections maps the top-level portal sections to the single role allowed in each.
var Sections = map[string]models.Role{
	"/admin":   models.RoleAdmin,
	"/teacher": models.RoleTeacher,
	"/student": models.RoleStudent,
}

// Resolve returns the route metadata for a request path. ok is false for paths outside
// every section, which the portal sends to the login route.
func Resolve(path string) (Route, bool) {
	if path == LoginPath {
		return Route{Path: path}, true
	}
	for prefix, role := range Sections {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return Route{Path: path, RequireAuth: true, AllowedRoles: []models.Role{role}}, true
		}
	}
	return Route{Path: path}, false
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
