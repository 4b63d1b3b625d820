package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole is a middleware that checks if the user has the required role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(UserIDKey)
		if !exists {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "User not authenticated")
			return
		}

		role, exists := c.Get(UserRoleKey)
		if !exists {
			abortWithError(c, http.StatusForbidden, models.ErrForbidden, "User role not found in token")
			return
		}

		userRole, ok := role.(string)
		if !ok {
			abortWithError(c, http.StatusForbidden, models.ErrForbidden, "Invalid role format")
			return
		}

		if userRole != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Insufficient permissions",
				map[string]interface{}{
					"required_role": requiredRole,
					"user_role":     userRole,
					"user_id":       userID,
				}))
			return
		}

		c.Next()
	}
}
