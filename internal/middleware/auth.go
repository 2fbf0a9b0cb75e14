package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator verifies a bearer token and recovers the principal id.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

const userIDKey = "user_id"

// AuthMiddleware gates protected routes on the x-auth-token header. A
// missing token is reported distinctly from an invalid or expired one, but
// both are 401. On success the principal id is attached to the request
// context; no user record is read.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-auth-token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		userID, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the principal attached by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
