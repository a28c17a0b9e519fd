package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(db *gorm.DB, n *models.Notification) error
	ListByUser(db *gorm.DB, userID string, limit int) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
	MarkAllRead(db *gorm.DB, userID string) error
	DeleteOldRead(db *gorm.DB, olderThan time.Time) (int64, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, n *models.Notification) error {
	return db.Create(n).Error
}

func (r *NotificationRepositoryImpl) ListByUser(db *gorm.DB, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkRead(db *gorm.DB, userID, notificationID string) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(db *gorm.DB, userID string) error {
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) DeleteOldRead(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Delete(&models.Notification{}, "is_read = true AND created_at < ?", olderThan)
	return result.RowsAffected, result.Error
}
