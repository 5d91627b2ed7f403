package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/session"
	"github.com/noah-isme/journal-portal/pkg/logger"
)

const (
	// ContextStoreKey is the gin context key holding the client instance's *session.Store.
	ContextStoreKey = "session_store"

	cookieSessionKey = "client_cookie"
	clientIDValue    = "client_id"
	returnPathValue  = "from"
)

// StoreProvider hands out the session store of a client instance.
type StoreProvider interface {
	Get(clientID string) *session.Store
}

// StoreWatcher is told about every store a request touches.
type StoreWatcher interface {
	Watch(store *session.Store)
}

// CookieOptions configures the client-instance cookie.
type CookieOptions struct {
	Name   string
	Secret string
	Secure bool
	MaxAge time.Duration
}

// NewCookieStore builds the signed cookie store. Without a secret a random key is
// generated, so cookies do not survive a restart.
func NewCookieStore(opts CookieOptions, log *zap.Logger) *sessions.CookieStore {
	key := []byte(opts.Secret)
	if len(key) == 0 {
		if log != nil {
			log.Warn("SESSION_SECRET is empty, using an ephemeral cookie key")
		}
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// ClientInstance identifies the browser behind a request through a signed cookie and
// attaches that client instance's session store to the context. A missing or tampered
// cookie starts a new client instance.
func ClientInstance(cookies sessions.Store, name string, stores StoreProvider, watcher StoreWatcher, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		cookie, err := cookies.Get(c.Request, name)
		if err != nil {
			log.Debug("client cookie rejected", zap.Error(err))
		}

		clientID, _ := cookie.Values[clientIDValue].(string)
		if clientID == "" {
			clientID = uuid.NewString()
			cookie.Values[clientIDValue] = clientID
			if err := cookie.Save(c.Request, c.Writer); err != nil {
				log.Warn("save client cookie", zap.Error(err))
			}
		}

		store := stores.Get(clientID)
		if watcher != nil {
			watcher.Watch(store)
		}
		c.Set(logger.ClientIDKey, clientID)
		c.Set(ContextStoreKey, store)
		c.Set(cookieSessionKey, cookie)
		c.Next()
	}
}

// StoreFrom returns the session store attached by ClientInstance.
func StoreFrom(c *gin.Context) *session.Store {
	value, exists := c.Get(ContextStoreKey)
	if !exists {
		return nil
	}
	store, _ := value.(*session.Store)
	return store
}

// RememberReturnPath keeps the path a signed-out user asked for. It must run before the
// response body is written.
func RememberReturnPath(c *gin.Context, path string) {
	cookie := cookieFrom(c)
	if cookie == nil {
		return
	}
	cookie.Values[returnPathValue] = path
	if err := cookie.Save(c.Request, c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// TakeReturnPath returns and forgets the remembered path.
func TakeReturnPath(c *gin.Context) string {
	cookie := cookieFrom(c)
	if cookie == nil {
		return ""
	}
	path, _ := cookie.Values[returnPathValue].(string)
	if path == "" {
		return ""
	}
	delete(cookie.Values, returnPathValue)
	if err := cookie.Save(c.Request, c.Writer); err != nil {
		_ = c.Error(err)
	}
	return path
}

func cookieFrom(c *gin.Context) *sessions.Session {
	value, exists := c.Get(cookieSessionKey)
	if !exists {
		return nil
	}
	cookie, _ := value.(*sessions.Session)
	return cookie
}
