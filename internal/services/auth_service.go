package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/repositories"
	"coachdeck_backend/internal/services/dto"
)

const resetTokenTTL = 30 * time.Minute

type AuthService interface {
	// Login возвращает единый 401 на неизвестный email, неверный пароль
	// и неактивный статус: перечислить аккаунты по ответам нельзя.
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// SignupCoach создает коуча в статусе PENDING и уведомляет супер-админов.
	SignupCoach(db *gorm.DB, req *dto.SignupCoachRequest) (*dto.UserProfile, error)

	Me(db *gorm.DB, userID string) (*dto.UserProfile, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error

	// RequestPasswordReset всегда отвечает успехом, существует email или нет.
	RequestPasswordReset(db *gorm.DB, req *dto.PasswordResetRequest) error
	RedeemPasswordReset(db *gorm.DB, req *dto.PasswordResetRedeem) error
}

type AuthServiceImpl struct {
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewAuthService(userRepo repositories.UserRepository, notificationService NotificationService) AuthService {
	return &AuthServiceImpl{
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	// PENDING и DISABLED не логинятся. Ответ тот же 401: статус аккаунта
	// не раскрывается.
	if user.Status != models.UserStatusActive {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserProfile(user),
	}, nil
}

func (s *AuthServiceImpl) SignupCoach(db *gorm.DB, req *dto.SignupCoachRequest) (*dto.UserProfile, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.UserRoleCoach,
		AccessLevel:  models.AccessLevelUser,
		Status:       models.UserStatusPending,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		return nil, appErrors.InternalError(err)
	}

	if err := s.notificationService.NotifyAdminsCoachSignup(db, user); err != nil {
		logger.Error("failed to notify admins about coach signup", "coach_id", user.ID, "error", err)
	}

	return dto.NewUserProfile(user), nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*dto.UserProfile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewUserProfile(user), nil
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return appErrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, req *dto.PasswordResetRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Тихий успех: наличие аккаунта не подтверждается.
			return nil
		}
		return appErrors.InternalError(err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return appErrors.InternalError(err)
	}

	// Новый запрос инвалидирует предыдущие токены пользователя.
	if err := s.userRepo.DeleteUserResetTokens(db, user.ID); err != nil {
		return appErrors.InternalError(err)
	}
	resetToken := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.userRepo.CreateResetToken(db, resetToken); err != nil {
		return appErrors.InternalError(err)
	}

	s.notificationService.SendPasswordReset(user, token)
	return nil
}

func (s *AuthServiceImpl) RedeemPasswordReset(db *gorm.DB, req *dto.PasswordResetRedeem) error {
	resetToken, err := s.userRepo.FindResetToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return appErrors.ErrInvalidToken
		}
		return appErrors.InternalError(err)
	}

	if time.Now().After(resetToken.ExpiresAt) {
		_ = s.userRepo.DeleteResetToken(db, req.Token)
		return appErrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, resetToken.UserID, hash); err != nil {
		return appErrors.InternalError(err)
	}

	// Токен одноразовый.
	if err := s.userRepo.DeleteResetToken(db, req.Token); err != nil {
		logger.Error("failed to delete used reset token", "user_id", resetToken.UserID, "error", err)
	}
	return nil
}
