package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/pkg/middleware/requestid"
)

// Audit records one log line for every successful write a signed-in user makes through
// the group it is mounted on.
func Audit(log *zap.Logger, resource string) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("audit")
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		fields := []zap.Field{
			zap.String("resource", resource),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Value(c)),
		}
		if store := StoreFrom(c); store != nil {
			if identity := store.Snapshot().Identity; identity != nil {
				fields = append(fields, zap.String("user_id", identity.ID), zap.String("role", string(identity.Role)))
			}
		}
		for _, key := range []string{"id", "lessonId"} {
			if id := c.Param(key); id != "" {
				fields = append(fields, zap.String("resource_id", id))
				break
			}
		}
		log.Info("write", fields...)
	}
}
