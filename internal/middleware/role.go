package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atithi/internal/domain"
	"atithi/internal/pkg/response"
)

// RequireRole ensures the authenticated user holds one of the given
// roles. Role display in the UI is a convenience; this is the server
// side gate.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		actor := domain.Role(value.(string))
		for _, role := range roles {
			if actor == role {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// ManagementOnly restricts an endpoint to the owner and managers.
func ManagementOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner, domain.RoleManager)
}
