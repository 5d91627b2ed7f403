package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/guard"
	"github.com/noah-isme/journal-portal/internal/middleware"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

// AccountAPI is the unauthenticated part of the journal API plus per-session binding.
type AccountAPI interface {
	APIFactory
	RegisterFirstAdmin(ctx context.Context, form models.RegisterAdminForm) (*gateway.Ack, error)
}

// SessionHandler serves sign-in, sign-out and the current session.
type SessionHandler struct {
	api        AccountAPI
	validator  *validator.Validate
	retryAfter int
}

// NewSessionHandler creates a new handler. retryAfterSeconds is sent while a session restores.
func NewSessionHandler(api AccountAPI, validate *validator.Validate, retryAfterSeconds int) *SessionHandler {
	if validate == nil {
		validate = validator.New()
	}
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	return &SessionHandler{api: api, validator: validate, retryAfter: retryAfterSeconds}
}

// LoginPage godoc
// @Summary Sign-in page
// @Description Lists the roles a user can sign in as. Signed-in users are sent to their dashboard.
// @Tags Session
// @Produce json
// @Param from query string false "Path to return to after sign-in"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Success 303 {object} response.Envelope
// @Router /login [get]
func (h *SessionHandler) LoginPage(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	state := store.Snapshot()
	switch {
	case state.Loading:
		c.Header("Retry-After", strconv.Itoa(h.retryAfter))
		response.JSON(c, http.StatusAccepted, nil, map[string]interface{}{"state": guard.Loading.String()})
	case state.IsAuthenticated():
		response.Redirect(c, guard.RootFor(state.Role()))
	default:
		response.OK(c, gin.H{"roles": models.Roles, "from": c.Query("from")})
	}
}

// Login godoc
// @Summary Sign in
// @Description Authenticates against the journal API with role-specific credentials
// @Tags Session
// @Accept json
// @Produce json
// @Param role path string true "admin, teacher or student"
// @Param payload body models.Credentials true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login/{role} [post]
func (h *SessionHandler) Login(c *gin.Context) {
	role, ok := models.ParseRole(c.Param("role"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown role"))
		return
	}
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	var creds models.Credentials
	if !bindJSON(c, &creds, "login") {
		return
	}

	state, err := store.Login(c.Request.Context(), role, creds)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := dto.NewSessionView(state)
	view.Redirect = landing(c, state)
	response.JSON(c, http.StatusOK, view, map[string]interface{}{"redirect": view.Redirect})
}

// landing picks where a fresh session goes: the remembered path when the new role may
// open it, else the role's root.
func landing(c *gin.Context, state session.State) string {
	root := guard.RootFor(state.Role())
	remembered := middleware.TakeReturnPath(c)
	for _, candidate := range []string{c.Query("from"), remembered} {
		from, ok := guard.SafeReturnPath(candidate)
		if !ok {
			continue
		}
		path, _, _ := strings.Cut(from, "?")
		route, known := guard.Resolve(path)
		if known && guard.Evaluate(state, route).Outcome == guard.Authorized {
			return from
		}
	}
	return root
}

// Logout godoc
// @Summary Sign out
// @Tags Session
// @Produce json
// @Success 303 {object} response.Envelope
// @Router /logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	store.Logout(c.Request.Context())
	response.Redirect(c, guard.LoginPath)
}

// Current godoc
// @Summary Current session
// @Description Returns the signed-in user, role and permissions. The token is never exposed.
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	response.OK(c, dto.NewSessionView(store.Snapshot()))
}

// UpdateIdentity godoc
// @Summary Update profile
// @Description Merges name, email or student number into the signed-in identity. The role cannot change.
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.IdentityPatch true "Identity fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /session/identity [patch]
func (h *SessionHandler) UpdateIdentity(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	var patch models.IdentityPatch
	if !bindJSON(c, &patch, "identity") {
		return
	}
	state, err := store.UpdateIdentity(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionView(state))
}

// ChangePassword godoc
// @Summary Change password
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordForm true "Passwords"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /session/password [post]
func (h *SessionHandler) ChangePassword(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	if !store.Snapshot().IsAuthenticated() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var form models.ChangePasswordForm
	if !bindJSON(c, &form, "password") {
		return
	}
	if err := h.validator.Struct(form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload"))
		return
	}
	ack, err := h.api.For(store).ChangePassword(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}

// RegisterAdmin godoc
// @Summary Register the first administrator
// @Description Bootstraps a fresh journal installation. The journal API refuses once an admin exists.
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.RegisterAdminForm true "Administrator"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /setup/admin [post]
func (h *SessionHandler) RegisterAdmin(c *gin.Context) {
	var form models.RegisterAdminForm
	if !bindJSON(c, &form, "admin") {
		return
	}
	if err := h.validator.Struct(form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin payload"))
		return
	}
	ack, err := h.api.RegisterFirstAdmin(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ack)
}

// Root sends the bare portal root and unknown paths to the sign-in page.
func (h *SessionHandler) Root(c *gin.Context) {
	response.Redirect(c, guard.LoginPath)
}
