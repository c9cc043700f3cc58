package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
	"github.com/studyhive-labs/studyhive-api/pkg/response"
)

// ContextRoleKey is the gin context key storing the resolved role.
const ContextRoleKey = "currentRole"

type roleResolver interface {
	ResolveRole(ctx context.Context, email string) (models.Role, error)
}

// RequireRoles enforces role-based access control for routes. The role is
// resolved from the user store on every request rather than trusted from the
// token, so demotions take effect immediately. Resolution failures deny
// access.
func RequireRoles(resolver roleResolver, allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), claims.Email)
		if err != nil {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Set(ContextRoleKey, role)
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// CurrentRole returns the role resolved by RequireRoles for this request.
func CurrentRole(c *gin.Context) models.Role {
	value, exists := c.Get(ContextRoleKey)
	if !exists {
		return models.RoleUnset
	}
	role, ok := value.(models.Role)
	if !ok {
		return models.RoleUnset
	}
	return role
}
