package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/auth"
	"travelapp/internal/domain"
)

const userKey = "auth_user"

// Authenticator resolves a raw bearer token to the caller.
type Authenticator interface {
	Authenticate(token string) (domain.RequestContext, error)
}

// AuthRequired rejects the request with 401 {message} unless a valid bearer token is sent.
func AuthRequired(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token provided"})
			return
		}
		user, err := a.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// AuthOptional attaches the caller when a valid token is present and passes through otherwise.
func AuthOptional(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := auth.BearerToken(c.GetHeader("Authorization")); err == nil {
			if user, err := a.Authenticate(token); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, if any.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	if c == nil {
		return domain.RequestContext{}, false
	}
	v, ok := c.Get(userKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	user, ok := v.(domain.RequestContext)
	return user, ok
}
