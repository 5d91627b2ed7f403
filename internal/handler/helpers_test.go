package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/middleware"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

type stubAuth struct {
	loginErr error
}

func (a stubAuth) Login(_ context.Context, role models.Role, _ interface{}) (*models.LoginResponse, error) {
	if a.loginErr != nil {
		return nil, a.loginErr
	}
	return &models.LoginResponse{Token: "tok", User: models.Identity{ID: "u1", Name: "User", Role: role}}, nil
}

func (stubAuth) Verify(context.Context, string) error { return nil }

func newStore(auth stubAuth) *session.Store {
	return session.NewStore("c1", session.NewMemoryStorage(), auth, nil, nil, session.Options{})
}

func signedIn(t *testing.T, role models.Role) *session.Store {
	t.Helper()
	store := newStore(stubAuth{})
	creds := models.Credentials{Email: "user@example.com", Name: "Ivan Ivanov", GroupName: "IS-21", Password: "secret1"}
	_, err := store.Login(context.Background(), role, creds)
	require.NoError(t, err)
	return store
}

// upstream is never dialled: every handler under test runs against a fake service.
func upstream() *gateway.Client {
	return gateway.New(gateway.Config{BaseURL: "http://upstream.invalid"}, nil, nil, nil)
}

func newContext(method, target, body string, store *session.Store) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if store != nil {
		c.Set(middleware.ContextStoreKey, store)
	}
	return rec, c
}
