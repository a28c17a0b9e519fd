package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/email"
	"coachdeck_backend/internal/handlers"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/routes"
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/storage"
	"coachdeck_backend/internal/workers"
)

// OpenDatabase подключается к Postgres и прогоняет миграции
func OpenDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// uuid_generate_v4 для первичных ключей.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, fmt.Errorf("failed to create uuid extension: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.Deck{},
		&models.Membership{},
		&models.Document{},
		&models.Ticket{},
		&models.TicketComment{},
		&models.PaymentPlan{},
		&models.CoachPaymentsConfig{},
		&models.CoachBankAccount{},
		&models.CoachEwallet{},
		&models.Invoice{},
		&models.AdminConfig{},
		&models.PlanPricing{},
		&models.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// SeedSuperAdmin создает первого супер-админа из конфига, если его еще нет
func SeedSuperAdmin(db *gorm.DB) error {
	cfg := config.GetConfig()
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ? OR access_level = ?", models.UserRoleSuperAdmin, models.AccessLevelAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Platform Admin",
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         models.UserRoleSuperAdmin,
		AccessLevel:  models.AccessLevelAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("seeded super admin", "email", admin.Email)
	return nil
}

// BuildHandlers собирает сервисы и хендлеры поверх общих зависимостей.
// Вынесено отдельно, чтобы тесты могли поднять роутер на своей базе.
func BuildHandlers() (*handlers.AppHandlers, error) {
	cfg := config.GetConfig()

	emailProvider, err := email.NewSMTPProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init email provider: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	serviceContainer := services.NewServiceContainer(emailProvider, fileStorage)
	return handlers.NewAppHandlers(serviceContainer, fileStorage), nil
}

// SetupRouter поднимает готовый движок на переданной базе
func SetupRouter(db *gorm.DB) (*gin.Engine, error) {
	appHandlers, err := BuildHandlers()
	if err != nil {
		return nil, err
	}
	return routes.SetupRouter(db, appHandlers), nil
}

// Run - точка входа приложения
func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := OpenDatabase(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("database init failed", "error", err)
	}

	if err := SeedSuperAdmin(db); err != nil {
		logger.Fatal("super admin seed failed", "error", err)
	}

	router, err := SetupRouter(db)
	if err != nil {
		logger.Fatal("router init failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewCleanupWorker(db).Start(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
