package auth

import (
	"strings"

	"codeberg.org/rolodex/server/internal/errors"
	"codeberg.org/rolodex/server/rolodex/users"
	"github.com/gin-gonic/gin"
)

// gin context keys set by RequireAuth
const (
	ctxUserKey  = "current_user"
	ctxTokenKey = "bearer_token"
)

// resolves the bearer token and stores the identity in the context
func RequireAuth(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)

		c.Next()
	}
}

// restricts a route to admin accounts, must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		if user.Role != users.RoleAdmin {
			errors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// extracts the authenticated identity set by RequireAuth
func CurrentUser(c *gin.Context) (*users.User, bool) {
	value, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users.User)

	return user, ok
}

// returns the raw bearer token of the current request, if any
func BearerToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}

// extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

func abortUnauthorized(c *gin.Context) {
	errors.Unauthorized(c, "Could not validate credentials")
	c.Abort()
}
