package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/service"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/jwt"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"

	"github.com/sirupsen/logrus"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore service.TokenStore, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        log,
	}
}

// Authenticate resolves the bearer token into an entity.Principal stored in
// the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Revoked tokens are missing from the whitelist
		allowed, err := m.tokenStore.IsAllowed(r.Context(), jwt.AccessToken, claims.UserID, claims.TokenID)
		if err != nil {
			m.log.Warnf("Failed to validate token: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !allowed {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := entity.WithPrincipal(r.Context(), entity.Principal{
			UserID:         claims.UserID,
			Email:          claims.Email,
			Role:           claims.Role,
			HealthAgencyID: claims.HealthAgencyID,
			TokenID:        claims.TokenID,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipal extracts the authenticated caller from context
func GetPrincipal(ctx context.Context) (entity.Principal, bool) {
	return entity.PrincipalFromContext(ctx)
}
