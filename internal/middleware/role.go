package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/polomanager/polomanager/internal/utils"
)

// RequireRoles permits the request only when the verified claims carry one of
// the given roles. Missing claims mean authentication never ran or failed.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := utils.GetCurrentClaims(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
			return
		}

		for _, role := range allowed {
			if claims.Role == role {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions"})
	}
}
