package repositories

import (
	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

// PlatformRepository - глобальные синглтон-строки конфигурации.
// Каждое чтение - lookup-or-default, каждая запись - upsert.
type PlatformRepository interface {
	GetOrCreateAdminConfig(db *gorm.DB) (*models.AdminConfig, error)
	UpdateAdminConfig(db *gorm.DB, cfg *models.AdminConfig) error

	GetOrCreatePlanPricing(db *gorm.DB) (*models.PlanPricing, error)
	UpdatePlanPricing(db *gorm.DB, pricing *models.PlanPricing) error
}

type PlatformRepositoryImpl struct{}

func NewPlatformRepository() PlatformRepository {
	return &PlatformRepositoryImpl{}
}

func (r *PlatformRepositoryImpl) GetOrCreateAdminConfig(db *gorm.DB) (*models.AdminConfig, error) {
	var cfg models.AdminConfig
	err := db.Where(models.AdminConfig{Key: models.AdminConfigKey}).FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *PlatformRepositoryImpl) UpdateAdminConfig(db *gorm.DB, cfg *models.AdminConfig) error {
	return db.Save(cfg).Error
}

func (r *PlatformRepositoryImpl) GetOrCreatePlanPricing(db *gorm.DB) (*models.PlanPricing, error) {
	var pricing models.PlanPricing
	err := db.Where(models.PlanPricing{Key: models.PlanPricingKey}).FirstOrCreate(&pricing).Error
	if err != nil {
		return nil, err
	}
	return &pricing, nil
}

func (r *PlatformRepositoryImpl) UpdatePlanPricing(db *gorm.DB, pricing *models.PlanPricing) error {
	return db.Save(pricing).Error
}
