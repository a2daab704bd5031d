package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/util"
)

// ContextUserKey is the gin context key the middleware stores the
// authenticated user under.
const ContextUserKey = "user"

// extractToken pulls the token from the Authorization header, the token query
// parameter, or the token cookie, in that order.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if token, err := c.Cookie("token"); err == nil && token != "" {
		return token
	}
	return ""
}

// Middleware validates requests with JWT tokens and loads the user into the
// request context. Rejections carry a machine-readable code.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			util.RespondWithAPIError(c, apierr.NoToken())
			c.Abort()
			return
		}

		user, err := s.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound):
				util.RespondWithAPIError(c, apierr.UserNotFound())
			case errors.Is(err, ErrAccountDeactivated):
				util.RespondWithAPIError(c, apierr.AccountDeactivated())
			default:
				util.RespondWithAPIError(c, apierr.InvalidToken())
			}
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalMiddleware loads the user when a valid token is present but never
// rejects the request.
func (s *Service) OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if user, err := s.ValidateToken(token); err == nil {
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}
