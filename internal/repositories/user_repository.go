package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTokenNotFound     = errors.New("reset token not found")
)

type UserRepository interface {
	// User operations
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	UpdatePassword(db *gorm.DB, userID string, passwordHash string) error
	Delete(db *gorm.DB, userID string) error
	FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error)
	FindActiveSuperAdmins(db *gorm.DB) ([]models.User, error)

	// HasOwnedResources: владеет ли пользователь деками или авторским
	// контентом. Блокирует удаление аккаунта.
	HasOwnedResources(db *gorm.DB, userID string) (bool, error)

	// PasswordResetToken operations
	CreateResetToken(db *gorm.DB, token *models.PasswordResetToken) error
	FindResetToken(db *gorm.DB, token string) (*models.PasswordResetToken, error)
	DeleteResetToken(db *gorm.DB, token string) error
	DeleteUserResetTokens(db *gorm.DB, userID string) error
	CleanExpiredResetTokens(db *gorm.DB) (int64, error)
}

type UserFilter struct {
	Role     models.UserRole
	Status   models.UserStatus
	Search   string
	Page     int
	PageSize int
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// NormalizeEmail приводит email к канонической форме для поиска и уникальности.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	if err := db.Create(user).Error; err != nil {
		// Гонка двух одновременных регистраций решается уникальным
		// индексом на email: проигравший получает duplicate key.
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID string, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	return db.Delete(&models.User{}, "id = ?", userID).Error
}

func (r *UserRepositoryImpl) FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		like := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) FindActiveSuperAdmins(db *gorm.DB) ([]models.User, error) {
	var admins []models.User
	err := db.Where("status = ? AND (role = ? OR access_level = ?)",
		models.UserStatusActive, models.UserRoleSuperAdmin, models.AccessLevelAdmin).
		Find(&admins).Error
	return admins, err
}

func (r *UserRepositoryImpl) HasOwnedResources(db *gorm.DB, userID string) (bool, error) {
	var count int64

	if err := db.Model(&models.Deck{}).Where("coach_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&models.Ticket{}).Where("author_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&models.TicketComment{}).Where("author_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PasswordResetToken operations

func (r *UserRepositoryImpl) CreateResetToken(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *UserRepositoryImpl) FindResetToken(db *gorm.DB, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := db.First(&t, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *UserRepositoryImpl) DeleteResetToken(db *gorm.DB, token string) error {
	return db.Delete(&models.PasswordResetToken{}, "token = ?", token).Error
}

func (r *UserRepositoryImpl) DeleteUserResetTokens(db *gorm.DB, userID string) error {
	return db.Delete(&models.PasswordResetToken{}, "user_id = ?", userID).Error
}

func (r *UserRepositoryImpl) CleanExpiredResetTokens(db *gorm.DB) (int64, error) {
	result := db.Delete(&models.PasswordResetToken{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}

// isUniqueViolation распознает нарушение уникального индекса (Postgres 23505).
func isUniqueViolation(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key"))
}
