package dto

import "coachdeck_backend/internal/models"

// LoginRequest - вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - токен и профиль
type LoginResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// SignupCoachRequest - самостоятельная регистрация коуча.
// Аккаунт создается в статусе PENDING до решения супер-админа.
type SignupCoachRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

// PasswordResetRequest - запрос ссылки сброса
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetRedeem - применение токена сброса
type PasswordResetRedeem struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePasswordRequest - смена пароля аутентифицированным пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserProfile - публичное представление пользователя. Хеш пароля
// и служебные поля наружу не отдаются.
type UserProfile struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone,omitempty"`
	Role        models.UserRole    `json:"role"`
	AccessLevel models.AccessLevel `json:"access_level"`
	Status      models.UserStatus  `json:"status"`
}

// NewUserProfile строит профиль из модели
func NewUserProfile(u *models.User) *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		AccessLevel: u.AccessLevel,
		Status:      u.Status,
	}
}
