package services

import (
	"errors"

	"gorm.io/gorm"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/repositories"
	"coachdeck_backend/internal/services/dto"
)

// Решения по заявке коуча
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// AccountService - админский жизненный цикл аккаунтов: заявки коучей,
// список пользователей, ручное создание и удаление.
type AccountService interface {
	ListPendingCoaches(db *gorm.DB) ([]dto.UserProfile, error)

	// DecideApproval идемпотентен: повторное решение по уже решенной
	// заявке возвращает текущее состояние без побочных эффектов.
	DecideApproval(db *gorm.DB, coachID, decision string) (*dto.UserProfile, error)

	ListUsers(db *gorm.DB, query *dto.AdminUserListQuery) ([]dto.UserProfile, int64, error)
	CreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserProfile, error)

	// DeleteUser отказывает, если пользователь владеет деками или
	// авторским контентом.
	DeleteUser(db *gorm.DB, actorID, userID string) error

	SetUserStatus(db *gorm.DB, userID string, status models.UserStatus) (*dto.UserProfile, error)

	// ProvisionStudent возвращает существующий аккаунт по email либо
	// создает новый студенческий с временным паролем. Второе возвращаемое
	// значение - временный пароль, пустая строка для существующих.
	ProvisionStudent(db *gorm.DB, studentEmail, studentName string) (*models.User, string, error)
}

type AccountServiceImpl struct {
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewAccountService(userRepo repositories.UserRepository, notificationService NotificationService) AccountService {
	return &AccountServiceImpl{
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *AccountServiceImpl) ListPendingCoaches(db *gorm.DB) ([]dto.UserProfile, error) {
	users, _, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Role:   models.UserRoleCoach,
		Status: models.UserStatusPending,
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return toProfiles(users), nil
}

func (s *AccountServiceImpl) DecideApproval(db *gorm.DB, coachID, decision string) (*dto.UserProfile, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, appErrors.NewBadRequestError("decision must be APPROVE or REJECT")
	}

	user, err := s.userRepo.FindByID(db, coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if user.Role != models.UserRoleCoach {
		return nil, appErrors.ErrUserNotFound
	}

	target := models.UserStatusActive
	if decision == DecisionReject {
		target = models.UserStatusDisabled
	}

	// Заявка уже решена: возвращаем как есть, без повторных уведомлений.
	if user.Status == target {
		return dto.NewUserProfile(user), nil
	}

	if err := s.userRepo.UpdateStatus(db, user.ID, target); err != nil {
		return nil, appErrors.InternalError(err)
	}
	user.Status = target

	if err := s.notificationService.NotifyCoachDecision(db, user, target == models.UserStatusActive); err != nil {
		logger.Error("failed to notify coach about decision", "coach_id", user.ID, "error", err)
	}
	return dto.NewUserProfile(user), nil
}

func (s *AccountServiceImpl) ListUsers(db *gorm.DB, query *dto.AdminUserListQuery) ([]dto.UserProfile, int64, error) {
	users, total, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		Status:   models.UserStatus(query.Status),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	return toProfiles(users), total, nil
}

func (s *AccountServiceImpl) CreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserProfile, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	accessLevel := models.AccessLevelUser
	if req.AccessLevel != "" {
		accessLevel = models.AccessLevel(req.AccessLevel)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		AccessLevel:  accessLevel,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		return nil, appErrors.InternalError(err)
	}
	return dto.NewUserProfile(user), nil
}

func (s *AccountServiceImpl) DeleteUser(db *gorm.DB, actorID, userID string) error {
	if actorID == userID {
		return appErrors.NewConflictError("Cannot delete own account")
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	owns, err := s.userRepo.HasOwnedResources(db, user.ID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if owns {
		return appErrors.ErrAccountNotDeletable
	}

	if err := s.userRepo.Delete(db, user.ID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *AccountServiceImpl) SetUserStatus(db *gorm.DB, userID string, status models.UserStatus) (*dto.UserProfile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if err := s.userRepo.UpdateStatus(db, user.ID, status); err != nil {
		return nil, appErrors.InternalError(err)
	}
	user.Status = status
	return dto.NewUserProfile(user), nil
}

func (s *AccountServiceImpl) ProvisionStudent(db *gorm.DB, studentEmail, studentName string) (*models.User, string, error) {
	existing, err := s.userRepo.FindByEmail(db, studentEmail)
	if err == nil {
		// Существующий аккаунт переиспользуется независимо от роли.
		return existing, "", nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, "", appErrors.InternalError(err)
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, "", appErrors.InternalError(err)
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, "", appErrors.InternalError(err)
	}

	name := studentName
	if name == "" {
		name = studentEmail
	}

	student := &models.User{
		Name:         name,
		Email:        studentEmail,
		PasswordHash: hash,
		Role:         models.UserRoleStudent,
		AccessLevel:  models.AccessLevelUser,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(db, student); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			// Гонка: кто-то создал аккаунт между проверкой и вставкой.
			existing, ferr := s.userRepo.FindByEmail(db, studentEmail)
			if ferr != nil {
				return nil, "", appErrors.InternalError(ferr)
			}
			return existing, "", nil
		}
		return nil, "", appErrors.InternalError(err)
	}
	return student, tempPassword, nil
}

func toProfiles(users []models.User) []dto.UserProfile {
	profiles := make([]dto.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *dto.NewUserProfile(&users[i]))
	}
	return profiles
}
