package middleware

import (
	"net/http"
	"strings"

	"storefront-service/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const AdminContextKey = "adminEmail"

// AdminAuth requires "Authorization: Bearer <token>" carrying a valid admin
// token.
func AdminAuth(tokens *auth.Tokens, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			return
		}
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := tokens.Parse(tokenStr, auth.TypeAdmin)
		if err != nil {
			log.Warn("Rejected admin token", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(AdminContextKey, sub)
		}
		c.Next()
	}
}
