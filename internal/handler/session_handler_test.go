package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

const teacherLogin = `{"email":"teacher@example.com","password":"secret1"}`

func TestSessionHandlerLoginUnknownRole(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	rec, c := newContext(http.MethodPost, "/login/guest", teacherLogin, newStore(stubAuth{}))
	c.Params = gin.Params{{Key: "role", Value: "guest"}}

	handler.Login(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandlerLoginLandsOnRoleRoot(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	store := newStore(stubAuth{})
	rec, c := newContext(http.MethodPost, "/login/teacher", teacherLogin, store)
	c.Params = gin.Params{{Key: "role", Value: "teacher"}}

	handler.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decode(t, rec)
	var view dto.SessionView
	require.NoError(t, json.Unmarshal(envelope.Data, &view))
	assert.True(t, view.IsAuthenticated)
	assert.Equal(t, models.RoleTeacher, view.Role)
	assert.True(t, view.Permissions.CanMarkAttendance)
	assert.Equal(t, "/teacher", view.Redirect)
	assert.Equal(t, "/teacher", envelope.Meta["redirect"])
	assert.NotContains(t, rec.Body.String(), `"token"`)
	assert.True(t, store.Snapshot().IsAuthenticated())
}

func TestSessionHandlerLoginHonoursReturnPath(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	cases := map[string]string{
		"/teacher/schedule?date=2024-09-03": "/teacher/schedule?date=2024-09-03",
		"/admin":                            "/teacher",
		"//evil.example.com":                "/teacher",
		"/nowhere":                          "/teacher",
	}
	for from, want := range cases {
		rec, c := newContext(http.MethodPost, "/login/teacher?from="+url.QueryEscape(from), teacherLogin, newStore(stubAuth{}))
		c.Params = gin.Params{{Key: "role", Value: "teacher"}}

		handler.Login(c)

		require.Equal(t, http.StatusOK, rec.Code, from)
		assert.Equal(t, want, decode(t, rec).Meta["redirect"], from)
	}
}

func TestSessionHandlerLoginRejectedCredentials(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	store := newStore(stubAuth{loginErr: appErrors.Clone(appErrors.ErrInvalidCredentials, "Неверный пароль")})
	rec, c := newContext(http.MethodPost, "/login/teacher", teacherLogin, store)
	c.Params = gin.Params{{Key: "role", Value: "teacher"}}

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decode(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "Неверный пароль", envelope.Error.Message)
	assert.False(t, store.Snapshot().IsAuthenticated())
}

func TestSessionHandlerLoginValidatesBeforeNetwork(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	rec, c := newContext(http.MethodPost, "/login/teacher", `{"email":"not-an-email","password":""}`, newStore(stubAuth{}))
	c.Params = gin.Params{{Key: "role", Value: "teacher"}}

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, rec).Error.Code)
}

func TestSessionHandlerLoginPageRedirectsSignedIn(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	rec, c := newContext(http.MethodGet, "/login", "", signedIn(t, models.RoleStudent))

	handler.LoginPage(c)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student", rec.Header().Get("Location"))
}

func TestSessionHandlerLogout(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	store := signedIn(t, models.RoleAdmin)
	rec, c := newContext(http.MethodPost, "/logout", "", store)

	handler.Logout(c)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, store.Snapshot().IsAuthenticated())
}

func TestSessionHandlerUpdateIdentityKeepsRole(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	store := signedIn(t, models.RoleTeacher)
	rec, c := newContext(http.MethodPatch, "/session/identity", `{"name":"Пётр Петров"}`, store)

	handler.UpdateIdentity(c)

	require.Equal(t, http.StatusOK, rec.Code)
	state := store.Snapshot()
	assert.Equal(t, "Пётр Петров", state.Identity.Name)
	assert.Equal(t, models.RoleTeacher, state.Role())
}

func TestSessionHandlerChangePasswordRequiresSession(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	rec, c := newContext(http.MethodPost, "/session/password", `{"currentPassword":"a","newPassword":"secret2"}`, newStore(stubAuth{}))

	handler.ChangePassword(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionHandlerRegisterAdminValidates(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	rec, c := newContext(http.MethodPost, "/setup/admin", `{"name":"A","email":"x","password":"1"}`, nil)

	handler.RegisterAdmin(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerMissingClientInstance(t *testing.T) {
	handler := NewSessionHandler(upstream(), nil, 1)
	rec, c := newContext(http.MethodGet, "/session", "", nil)

	handler.Current(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
