package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panal/internal/models"
)

// RequireGlobalRoles protege los endpoints de administración de la
// plataforma. El rol global nunca decide permisos sobre recursos de un
// proyecto: eso es cosa de internal/authz.
func RequireGlobalRoles(allowed ...models.GlobalRole) gin.HandlerFunc {
	allowedSet := map[models.GlobalRole]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		role, _ := v.(string)
		if _, ok := allowedSet[models.GlobalRole(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
			return
		}
		c.Next()
	}
}
