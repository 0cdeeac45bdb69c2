package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"placewell-backend/config"
	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, gateway domain.AuthGateway, identity domain.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		var sub, email string

		if cfg.UseMockIdentity() {
			// Mock tokens are opaque session handles, not JWTs. Resolve them
			// through the provider directly.
			user, err := identity.GetUser(c.Request.Context(), tokenString)
			if err != nil {
				response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
				c.Abort()
				return
			}
			sub = user.ID
			email = user.Email
		} else {
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
					// HS256 - Use Secret
					if cfg.SupabaseJWTSecret == "" {
						return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
					}
					return []byte(cfg.SupabaseJWTSecret), nil
				}

				if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
					// RS256 - Use JWKS
					return jwksProvider.KeyFunc(token)
				}

				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			})

			if err != nil || !token.Valid {
				response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
				c.Abort()
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
				c.Abort()
				return
			}

			sub, _ = claims["sub"].(string)
			email, _ = claims["email"].(string)
		}

		// Fetch the profile to get the authoritative Role. The JWT role claim
		// is not trusted as it may be 'authenticated' or stale.
		profile, err := gateway.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		role := profile.Role
		if role == "" {
			role = domain.RoleStudent
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)

		// Usecases read the typed keys from the request context.
		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
