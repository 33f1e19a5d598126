package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/token"
)

// UserIDKey is where the authenticated account id lives in the gin context.
const UserIDKey = "userID"

// RequireAuth validates the bearer session token and exposes the account id
// to downstream handlers. Any defect in the credential answers 401 with the
// same body.
func RequireAuth(tokens token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			unauthorized(c)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// AuthedUserID reads the account id placed by RequireAuth.
func AuthedUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "invalid token",
	})
}
