package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// Login exchanges role-specific credentials for a token and identity.
func (c *Client) Login(ctx context.Context, role models.Role, form interface{}) (*models.LoginResponse, error) {
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", role))
	}
	var resp models.LoginResponse
	err := c.do(ctx, call{
		op:     "login_" + role.Slug(),
		method: http.MethodPost,
		path:   "/auth/" + role.Slug() + "/login",
		body:   form,
		login:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "login response carried no session")
	}
	return &resp, nil
}

// Verify checks that the journal API still accepts token.
func (c *Client) Verify(ctx context.Context, token string) error {
	return c.do(ctx, call{op: "verify", method: http.MethodGet, path: "/auth/verify", token: token}, nil)
}

// Health reports the journal API health payload.
func (c *Client) Health(ctx context.Context) (models.Analytics, error) {
	var out models.Analytics
	if err := c.do(ctx, call{op: "health", method: http.MethodGet, path: "/health"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterFirstAdmin bootstraps the first administrator account.
func (c *Client) RegisterFirstAdmin(ctx context.Context, form models.RegisterAdminForm) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, call{op: "register_first_admin", method: http.MethodPost, path: "/auth/register-first-admin", body: form}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ChangePassword changes the current user's password.
func (s *Session) ChangePassword(ctx context.Context, form models.ChangePasswordForm) (*Ack, error) {
	return s.ack(ctx, "change_password", http.MethodPost, "/auth/change-password", form)
}

func (s *Session) ack(ctx context.Context, op, method, path string, body interface{}) (*Ack, error) {
	var ack Ack
	if err := s.do(ctx, call{op: op, method: method, path: path, body: body}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
