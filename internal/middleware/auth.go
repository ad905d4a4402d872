package middleware

import (
	"net/http"

	"github.com/Gundeep-repos/Developer-Connector/internal/auth"
	"github.com/Gundeep-repos/Developer-Connector/internal/config"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

// TokenHeader is the request header carrying the signed token.
const TokenHeader = "x-auth-token"

// AuthRequired verifies the x-auth-token header and puts the caller's user
// id into the context. Requests without a valid token never reach the
// handler.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		userID, err := auth.ValidateToken(cfg.JWTSecret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID reads the id set by AuthRequired.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
