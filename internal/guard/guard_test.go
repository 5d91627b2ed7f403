package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
)

func stateFor(role models.Role, loading bool) session.State {
	if role == "" {
		return session.State{Loading: loading}
	}
	return session.State{Identity: &models.Identity{ID: "u", Role: role}, Token: "tok", Loading: loading}
}

func TestEvaluateIsTotal(t *testing.T) {
	roles := []models.Role{"", models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.Role("Dean")}
	allowed := [][]models.Role{nil, {models.RoleAdmin}, {models.RoleTeacher}, {models.RoleStudent}, {models.RoleAdmin, models.RoleTeacher}}

	for _, role := range roles {
		for _, loading := range []bool{true, false} {
			for _, requireAuth := range []bool{true, false} {
				for _, set := range allowed {
					route := Route{Path: "/x", RequireAuth: requireAuth, AllowedRoles: set}
					d := Evaluate(stateFor(role, loading), route)

					switch d.Outcome {
					case Loading, Authorized:
						assert.Empty(t, d.Redirect)
					case Unauthenticated, Forbidden:
						assert.NotEmpty(t, d.Redirect)
					default:
						t.Fatalf("unexpected outcome %v", d.Outcome)
					}
					if loading {
						assert.Equal(t, Loading, d.Outcome)
					}
				}
			}
		}
	}
}

func TestEvaluateTransitions(t *testing.T) {
	teacherOnly := Route{Path: "/teacher/lesson/42", RequireAuth: true, AllowedRoles: []models.Role{models.RoleTeacher}}

	assert.Equal(t, Decision{Outcome: Loading}, Evaluate(stateFor(models.RoleStudent, true), teacherOnly))
	assert.Equal(t, Decision{Outcome: Unauthenticated, Redirect: "/login?from=%2Fteacher%2Flesson%2F42"}, Evaluate(stateFor("", false), teacherOnly))
	assert.Equal(t, Decision{Outcome: Forbidden, Redirect: "/student"}, Evaluate(stateFor(models.RoleStudent, false), teacherOnly))
	assert.Equal(t, Decision{Outcome: Forbidden, Redirect: "/login"}, Evaluate(stateFor(models.Role("Dean"), false), teacherOnly))
	assert.Equal(t, Decision{Outcome: Authorized}, Evaluate(stateFor(models.RoleTeacher, false), teacherOnly))

	anyRole := Route{Path: "/settings", RequireAuth: true}
	assert.Equal(t, Authorized, Evaluate(stateFor(models.RoleStudent, false), anyRole).Outcome)

	public := Route{Path: LoginPath}
	assert.Equal(t, Authorized, Evaluate(stateFor("", false), public).Outcome)
}

func TestRootFor(t *testing.T) {
	assert.Equal(t, "/admin", RootFor(models.RoleAdmin))
	assert.Equal(t, "/teacher", RootFor(models.RoleTeacher))
	assert.Equal(t, "/student", RootFor(models.RoleStudent))
	assert.Equal(t, "/login", RootFor(""))
}

func TestResolve(t *testing.T) {
	route, ok := Resolve("/admin/departments")
	assert.True(t, ok)
	assert.Equal(t, []models.Role{models.RoleAdmin}, route.AllowedRoles)
	assert.True(t, route.RequireAuth)

	route, ok = Resolve("/login")
	assert.True(t, ok)
	assert.False(t, route.RequireAuth)

	_, ok = Resolve("/administrator")
	assert.False(t, ok)
	_, ok = Resolve("/")
	assert.False(t, ok)
}

func TestSafeReturnPath(t *testing.T) {
	p, ok := SafeReturnPath("/teacher/lesson/1")
	assert.True(t, ok)
	assert.Equal(t, "/teacher/lesson/1", p)

	for _, bad := range []string{"", "https://evil.test", "//evil.test", "/login", "/login?from=/x", `/\evil`} {
		_, ok := SafeReturnPath(bad)
		assert.False(t, ok, bad)
	}
}
