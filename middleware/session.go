package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionCookie     = "session_id"
	SessionContextKey = "sessionID"
	IdempotencyHeader = "Idempotency-Key"
)

// Session resolves the shopper's session id from the X-Session-ID header or
// the session_id cookie, issuing a new uuid when neither is present. The id
// is echoed back in both so either transport keeps working.
func Session(cookieTTL time.Duration, secureCookie bool) gin.HandlerFunc {
	maxAge := int(cookieTTL / time.Second)
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if v, err := c.Cookie(SessionCookie); err == nil {
				id = v
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(SessionContextKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", secureCookie, true)
		c.Next()
	}
}

// GetSessionID returns the id set by Session.
func GetSessionID(c *gin.Context) (string, error) {
	if val, ok := c.Get(SessionContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("session ID not found in context")
}
