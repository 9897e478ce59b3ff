package middleware

import (
	"net/http"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from the principal set by AuthMiddleware
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if !principal.HasRole(roles...) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin is a convenience middleware for super admin only endpoints
func RequireSuperAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSuperAdmin)(next)
}

// RequireAdmin allows admins and super admins
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)(next)
}
