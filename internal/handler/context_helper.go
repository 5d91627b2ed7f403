package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/middleware"
	"github.com/noah-isme/journal-portal/internal/session"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

// APIFactory binds the journal API client to a session's token.
type APIFactory interface {
	For(tokens gateway.TokenSource) *gateway.Session
}

// storeFromContext returns the client instance's session store, writing an error
// response when the client middleware did not run.
func storeFromContext(c *gin.Context) (*session.Store, bool) {
	store := middleware.StoreFrom(c)
	if store == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "client instance missing"))
		return nil, false
	}
	return store, true
}

// apiFromContext returns the journal API bound to the request's session.
func apiFromContext(c *gin.Context, factory APIFactory) (*gateway.Session, *session.Store, bool) {
	store, ok := storeFromContext(c)
	if !ok {
		return nil, nil, false
	}
	return factory.For(store), store, true
}

func bindJSON(c *gin.Context, dst interface{}, what string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+what+" payload"))
		return false
	}
	return true
}
