package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/models"
)

// Claims - содержимое stateless-сессии. Сессия самодостаточна:
// статус пользователя при активной сессии повторно не проверяется
// (проверка происходит при логине и при сбросе пароля).
type Claims struct {
	UserID       string             `json:"user_id"`
	Role         models.UserRole    `json:"role"`
	AccessLevel  models.AccessLevel `json:"access_level"`
	Phone        string             `json:"phone"`
	IsSuperAdmin bool               `json:"is_super_admin"`
	jwt.RegisteredClaims
}

// GenerateToken выпускает подписанный JWT для пользователя
func GenerateToken(user *models.User) (string, error) {
	cfg := config.GetConfig()
	ttl := time.Duration(cfg.JWT.TTL) * time.Minute

	claims := &Claims{
		UserID:       user.ID,
		Role:         user.Role,
		AccessLevel:  user.AccessLevel,
		Phone:        user.Phone,
		IsSuperAdmin: IsSuperAdminUser(user),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken разбирает и валидирует JWT
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.GetConfig()

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
