package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/models"
)

// ClaimsContextKey - ключ, по которому claims лежат в gin-контексте
const ClaimsContextKey = "auth_claims"

// AuthMiddleware проверяет Bearer-токен и кладет claims в контекст
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			appErrors.HandleError(c, appErrors.NewUnauthorizedError("Invalid authorization header"))
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			appErrors.HandleError(c, appErrors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ClaimsContextKey, claims)

		c.Next()
	}
}

// GetClaims извлекает claims из gin-контекста
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// SuperAdminMiddleware пропускает только супер-админов
func SuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}
		if !auth.IsSuperAdmin(claims) {
			appErrors.HandleError(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли.
// Супер-админ проходит всегда.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}
		if auth.IsSuperAdmin(claims) {
			c.Next()
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		appErrors.HandleError(c, appErrors.ErrForbidden)
	}
}
