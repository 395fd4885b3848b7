// Package middleware provides the gin middleware shared by the router:
// the admin gate and request logging.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/service"
)

// AdminAuth verifies the bearer token on admin routes before any
// handler runs, so a rejected request has no side effects. The original
// clients sent the raw token in the Authorization header, so both
// "Bearer <token>" and a bare token are accepted. The rejection message
// is deliberately generic.
func AdminAuth(admin *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(401, gin.H{"msg": "Invalid token"})
			c.Abort()
			return
		}

		identity, err := admin.Verify(tokenString)
		if err != nil {
			logger.Warn("Rejected admin token",
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(401, gin.H{"msg": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("role", identity.Role)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value,
// with or without the Bearer prefix.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
