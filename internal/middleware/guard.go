package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/guard"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

// Guard evaluates the access guard for every request of a portal section. While the
// session is still being validated the request gets 202 with Retry-After instead of a
// redirect, so a restoring user is never bounced to the login page.
func Guard(retryAfter time.Duration) gin.HandlerFunc {
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return func(c *gin.Context) {
		store := StoreFrom(c)
		if store == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrInternal, "client instance missing"))
			c.Abort()
			return
		}

		route, ok := guard.Resolve(c.Request.URL.Path)
		if !ok {
			response.Redirect(c, guard.LoginPath)
			c.Abort()
			return
		}
		route.Path = c.Request.URL.RequestURI()

		decision := guard.Evaluate(store.Snapshot(), route)
		switch decision.Outcome {
		case guard.Loading:
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.JSON(c, http.StatusAccepted, nil, map[string]interface{}{"state": guard.Loading.String()})
			c.Abort()
		case guard.Unauthenticated:
			RememberReturnPath(c, route.Path)
			response.Redirect(c, decision.Redirect)
			c.Abort()
		case guard.Forbidden:
			response.Redirect(c, decision.Redirect)
			c.Abort()
		default:
			c.Next()
		}
	}
}
