package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/metrics"
	"github.com/lunorlabs/lunor/internal/session"
)

// SessionCookie is the cookie the access token travels in.
const SessionCookie = "token"

const errUnauthorized = "Unauthorized"

// usernameKey is where the authenticated username lives in the gin context.
const usernameKey = "username"

// Session extracts the optional identity from the session cookie. A missing,
// malformed, expired or forged token leaves the request anonymous; it is
// never surfaced as an error and never aborts the request.
func Session(auth *session.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		subject := auth.Subject(raw)
		if subject == "" {
			metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
			c.Next()
			return
		}

		metrics.SessionValidationsTotal.WithLabelValues("valid").Inc()
		c.Set(usernameKey, subject)
		c.Next()
	}
}

// Username returns the authenticated username for the request, or "" for
// anonymous requests.
func Username(c *gin.Context) string {
	return c.GetString(usernameKey)
}

// RequireUser aborts with 401 when the request is anonymous. Runs after
// Session.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Username(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		c.Next()
	}
}
