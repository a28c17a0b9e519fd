package repositories

import (
	"errors"

	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

var (
	ErrPlanNotFound    = errors.New("payment plan not found")
	ErrChannelNotFound = errors.New("payment channel not found")
)

type PaymentRepository interface {
	// PaymentPlan operations
	CreatePlan(db *gorm.DB, plan *models.PaymentPlan) error
	FindPlanByID(db *gorm.DB, planID string) (*models.PaymentPlan, error)
	ListPlansByCoach(db *gorm.DB, coachID string) ([]models.PaymentPlan, error)
	ListActivePlansByCoach(db *gorm.DB, coachID string) ([]models.PaymentPlan, error)
	UpdatePlan(db *gorm.DB, plan *models.PaymentPlan) error
	DeletePlan(db *gorm.DB, coachID, planID string) error

	// CoachPaymentsConfig: синглтон на коуча, создается при первом чтении.
	GetOrCreateConfig(db *gorm.DB, coachID string) (*models.CoachPaymentsConfig, error)
	UpdateConfig(db *gorm.DB, cfg *models.CoachPaymentsConfig) error

	// Bank account operations
	CreateBankAccount(db *gorm.DB, acc *models.CoachBankAccount) error
	ListBankAccounts(db *gorm.DB, coachID string) ([]models.CoachBankAccount, error)
	FindBankAccount(db *gorm.DB, accountID string) (*models.CoachBankAccount, error)
	DeleteBankAccount(db *gorm.DB, coachID, accountID string) error

	// E-wallet operations
	CreateEwallet(db *gorm.DB, w *models.CoachEwallet) error
	ListEwallets(db *gorm.DB, coachID string) ([]models.CoachEwallet, error)
	FindEwallet(db *gorm.DB, walletID string) (*models.CoachEwallet, error)
	DeleteEwallet(db *gorm.DB, coachID, walletID string) error
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

// PaymentPlan operations

func (r *PaymentRepositoryImpl) CreatePlan(db *gorm.DB, plan *models.PaymentPlan) error {
	return db.Create(plan).Error
}

func (r *PaymentRepositoryImpl) FindPlanByID(db *gorm.DB, planID string) (*models.PaymentPlan, error) {
	var plan models.PaymentPlan
	err := db.First(&plan, "id = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PaymentRepositoryImpl) ListPlansByCoach(db *gorm.DB, coachID string) ([]models.PaymentPlan, error) {
	var plans []models.PaymentPlan
	err := db.Where("coach_id = ?", coachID).Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *PaymentRepositoryImpl) ListActivePlansByCoach(db *gorm.DB, coachID string) ([]models.PaymentPlan, error) {
	var plans []models.PaymentPlan
	err := db.Where("coach_id = ? AND active = true", coachID).Order("amount ASC").Find(&plans).Error
	return plans, err
}

func (r *PaymentRepositoryImpl) UpdatePlan(db *gorm.DB, plan *models.PaymentPlan) error {
	return db.Save(plan).Error
}

func (r *PaymentRepositoryImpl) DeletePlan(db *gorm.DB, coachID, planID string) error {
	result := db.Delete(&models.PaymentPlan{}, "id = ? AND coach_id = ?", planID, coachID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// CoachPaymentsConfig operations

func (r *PaymentRepositoryImpl) GetOrCreateConfig(db *gorm.DB, coachID string) (*models.CoachPaymentsConfig, error) {
	var cfg models.CoachPaymentsConfig
	err := db.Where(models.CoachPaymentsConfig{CoachID: coachID}).FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *PaymentRepositoryImpl) UpdateConfig(db *gorm.DB, cfg *models.CoachPaymentsConfig) error {
	return db.Save(cfg).Error
}

// Bank account operations

func (r *PaymentRepositoryImpl) CreateBankAccount(db *gorm.DB, acc *models.CoachBankAccount) error {
	return db.Create(acc).Error
}

func (r *PaymentRepositoryImpl) ListBankAccounts(db *gorm.DB, coachID string) ([]models.CoachBankAccount, error) {
	var accounts []models.CoachBankAccount
	err := db.Where("coach_id = ?", coachID).Order("created_at DESC").Find(&accounts).Error
	return accounts, err
}

func (r *PaymentRepositoryImpl) FindBankAccount(db *gorm.DB, accountID string) (*models.CoachBankAccount, error) {
	var acc models.CoachBankAccount
	err := db.First(&acc, "id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *PaymentRepositoryImpl) DeleteBankAccount(db *gorm.DB, coachID, accountID string) error {
	result := db.Delete(&models.CoachBankAccount{}, "id = ? AND coach_id = ?", accountID, coachID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChannelNotFound
	}
	return nil
}

// E-wallet operations

func (r *PaymentRepositoryImpl) CreateEwallet(db *gorm.DB, w *models.CoachEwallet) error {
	return db.Create(w).Error
}

func (r *PaymentRepositoryImpl) ListEwallets(db *gorm.DB, coachID string) ([]models.CoachEwallet, error) {
	var wallets []models.CoachEwallet
	err := db.Where("coach_id = ?", coachID).Order("created_at DESC").Find(&wallets).Error
	return wallets, err
}

func (r *PaymentRepositoryImpl) FindEwallet(db *gorm.DB, walletID string) (*models.CoachEwallet, error) {
	var w models.CoachEwallet
	err := db.First(&w, "id = ?", walletID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *PaymentRepositoryImpl) DeleteEwallet(db *gorm.DB, coachID, walletID string) error {
	result := db.Delete(&models.CoachEwallet{}, "id = ? AND coach_id = ?", walletID, coachID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChannelNotFound
	}
	return nil
}
