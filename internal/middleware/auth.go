package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"showhome/internal/pkg/jwt"
	"showhome/internal/pkg/response"
)

// AdminAuth validates the bearer token and requires the admin role.
// Every management route sits behind this.
func AdminAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}
