package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinayakfood/website/backend/internal/service"
)

// SessionCookie is the cookie the admin UI may use instead of a bearer token
const SessionCookie = "admin_session"

// SessionResolver turns a session token into a verified session
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*service.AdminSession, error)
}

// AuthMiddleware requires a valid admin session and attaches it to the
// request context for the services to re-verify.
func AuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:    "sign in required",
				LoginURL: LoginURL,
			})
			return
		}

		session, err := resolver.CurrentSession(c.Request.Context(), token)
		if err != nil {
			status, body := Classify(err)
			c.AbortWithStatusJSON(status, body)
			return
		}

		c.Request = c.Request.WithContext(service.WithSession(c.Request.Context(), session))
		c.Set("admin_id", session.AdminID.String())
		c.Next()
	}
}

// extractToken reads a bearer token from the Authorization header, falling
// back to the session cookie.
func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
