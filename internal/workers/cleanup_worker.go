package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/repositories"
)

const (
	cleanupInterval  = time.Hour
	readRetentionAge = 30 * 24 * time.Hour
)

// CleanupWorker периодически удаляет протухшие reset-токены
// и старые прочитанные уведомления.
type CleanupWorker struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewCleanupWorker(db *gorm.DB) *CleanupWorker {
	return &CleanupWorker{
		db:               db,
		userRepo:         repositories.NewUserRepository(),
		notificationRepo: repositories.NewNotificationRepository(),
	}
}

// Start запускает воркер до отмены контекста
func (w *CleanupWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		w.runOnce()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runOnce()
			}
		}
	}()
}

func (w *CleanupWorker) runOnce() {
	if removed, err := w.userRepo.CleanExpiredResetTokens(w.db); err != nil {
		logger.Error("failed to clean expired reset tokens", "error", err)
	} else if removed > 0 {
		logger.Info("cleaned expired reset tokens", "count", removed)
	}

	cutoff := time.Now().Add(-readRetentionAge)
	if removed, err := w.notificationRepo.DeleteOldRead(w.db, cutoff); err != nil {
		logger.Error("failed to clean old notifications", "error", err)
	} else if removed > 0 {
		logger.Info("cleaned old read notifications", "count", removed)
	}
}
