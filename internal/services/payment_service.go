package services

import (
	"errors"

	"gorm.io/gorm"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/repositories"
	"coachdeck_backend/internal/services/dto"
)

// PaymentService - тарифы и платежные реквизиты коуча. Мутации доступны
// только владельцу с ролью COACH, супер-админ чужие реквизиты не правит.
type PaymentService interface {
	CreatePlan(db *gorm.DB, claims *auth.Claims, req *dto.CreatePlanRequest) (*models.PaymentPlan, error)
	ListMyPlans(db *gorm.DB, claims *auth.Claims) ([]models.PaymentPlan, error)
	UpdatePlan(db *gorm.DB, claims *auth.Claims, planID string, req *dto.UpdatePlanRequest) (*models.PaymentPlan, error)
	DeletePlan(db *gorm.DB, claims *auth.Claims, planID string) error

	// ListCoachPlans - публичная витрина активных тарифов коуча для студентов.
	ListCoachPlans(db *gorm.DB, coachID string) ([]models.PaymentPlan, error)

	GetConfig(db *gorm.DB, claims *auth.Claims) (*models.CoachPaymentsConfig, error)
	UpdateConfig(db *gorm.DB, claims *auth.Claims, req *dto.UpdatePaymentsConfigRequest) (*models.CoachPaymentsConfig, error)

	AddBankAccount(db *gorm.DB, claims *auth.Claims, req *dto.CreateBankAccountRequest) (*models.CoachBankAccount, error)
	ListBankAccounts(db *gorm.DB, claims *auth.Claims) ([]models.CoachBankAccount, error)
	DeleteBankAccount(db *gorm.DB, claims *auth.Claims, accountID string) error

	AddEwallet(db *gorm.DB, claims *auth.Claims, req *dto.CreateEwalletRequest) (*models.CoachEwallet, error)
	ListEwallets(db *gorm.DB, claims *auth.Claims) ([]models.CoachEwallet, error)
	DeleteEwallet(db *gorm.DB, claims *auth.Claims, walletID string) error
}

type PaymentServiceImpl struct {
	paymentRepo repositories.PaymentRepository
}

func NewPaymentService(paymentRepo repositories.PaymentRepository) PaymentService {
	return &PaymentServiceImpl{paymentRepo: paymentRepo}
}

func requireCoach(claims *auth.Claims) error {
	if claims.Role != models.UserRoleCoach {
		return appErrors.ErrForbidden
	}
	return nil
}

func (s *PaymentServiceImpl) CreatePlan(db *gorm.DB, claims *auth.Claims, req *dto.CreatePlanRequest) (*models.PaymentPlan, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}

	planType := models.PlanTypeOneTime
	if req.Type != "" {
		planType = models.PlanType(req.Type)
	}
	currency := req.Currency
	if currency == "" {
		currency = "PHP"
	}

	plan := &models.PaymentPlan{
		CoachID:     claims.UserID,
		Name:        req.Name,
		Description: req.Description,
		Type:        planType,
		Amount:      req.Amount,
		Currency:    currency,
		Active:      true,
	}
	if err := s.paymentRepo.CreatePlan(db, plan); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return plan, nil
}

func (s *PaymentServiceImpl) ListMyPlans(db *gorm.DB, claims *auth.Claims) ([]models.PaymentPlan, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}
	plans, err := s.paymentRepo.ListPlansByCoach(db, claims.UserID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return plans, nil
}

func (s *PaymentServiceImpl) UpdatePlan(db *gorm.DB, claims *auth.Claims, planID string, req *dto.UpdatePlanRequest) (*models.PaymentPlan, error) {
	plan, err := s.paymentRepo.FindPlanByID(db, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, appErrors.ErrPlanUnavailable
		}
		return nil, appErrors.InternalError(err)
	}
	if !auth.CanManageCoachPaymentResource(claims, plan.CoachID) {
		// Чужой тариф неотличим от несуществующего.
		return nil, appErrors.ErrPlanUnavailable
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Amount != nil {
		plan.Amount = *req.Amount
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := s.paymentRepo.UpdatePlan(db, plan); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return plan, nil
}

func (s *PaymentServiceImpl) DeletePlan(db *gorm.DB, claims *auth.Claims, planID string) error {
	if err := requireCoach(claims); err != nil {
		return err
	}
	if err := s.paymentRepo.DeletePlan(db, claims.UserID, planID); err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return appErrors.ErrPlanUnavailable
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *PaymentServiceImpl) ListCoachPlans(db *gorm.DB, coachID string) ([]models.PaymentPlan, error) {
	plans, err := s.paymentRepo.ListActivePlansByCoach(db, coachID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return plans, nil
}

func (s *PaymentServiceImpl) GetConfig(db *gorm.DB, claims *auth.Claims) (*models.CoachPaymentsConfig, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}
	cfg, err := s.paymentRepo.GetOrCreateConfig(db, claims.UserID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return cfg, nil
}

func (s *PaymentServiceImpl) UpdateConfig(db *gorm.DB, claims *auth.Claims, req *dto.UpdatePaymentsConfigRequest) (*models.CoachPaymentsConfig, error) {
	cfg, err := s.GetConfig(db, claims)
	if err != nil {
		return nil, err
	}

	if req.EnableBank != nil {
		cfg.EnableBank = *req.EnableBank
	}
	if req.EnableEwallet != nil {
		cfg.EnableEwallet = *req.EnableEwallet
	}
	if req.BookingURL != nil {
		cfg.BookingURL = *req.BookingURL
	}

	if err := s.paymentRepo.UpdateConfig(db, cfg); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return cfg, nil
}

func (s *PaymentServiceImpl) AddBankAccount(db *gorm.DB, claims *auth.Claims, req *dto.CreateBankAccountRequest) (*models.CoachBankAccount, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}
	acc := &models.CoachBankAccount{
		CoachID:       claims.UserID,
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
	}
	if err := s.paymentRepo.CreateBankAccount(db, acc); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return acc, nil
}

func (s *PaymentServiceImpl) ListBankAccounts(db *gorm.DB, claims *auth.Claims) ([]models.CoachBankAccount, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}
	accounts, err := s.paymentRepo.ListBankAccounts(db, claims.UserID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return accounts, nil
}

func (s *PaymentServiceImpl) DeleteBankAccount(db *gorm.DB, claims *auth.Claims, accountID string) error {
	if err := requireCoach(claims); err != nil {
		return err
	}
	if err := s.paymentRepo.DeleteBankAccount(db, claims.UserID, accountID); err != nil {
		if errors.Is(err, repositories.ErrChannelNotFound) {
			return appErrors.NotFound("Bank account")
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *PaymentServiceImpl) AddEwallet(db *gorm.DB, claims *auth.Claims, req *dto.CreateEwalletRequest) (*models.CoachEwallet, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}
	w := &models.CoachEwallet{
		CoachID:     claims.UserID,
		Provider:    req.Provider,
		AccountName: req.AccountName,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.paymentRepo.CreateEwallet(db, w); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return w, nil
}

func (s *PaymentServiceImpl) ListEwallets(db *gorm.DB, claims *auth.Claims) ([]models.CoachEwallet, error) {
	if err := requireCoach(claims); err != nil {
		return nil, err
	}
	wallets, err := s.paymentRepo.ListEwallets(db, claims.UserID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return wallets, nil
}

func (s *PaymentServiceImpl) DeleteEwallet(db *gorm.DB, claims *auth.Claims, walletID string) error {
	if err := requireCoach(claims); err != nil {
		return err
	}
	if err := s.paymentRepo.DeleteEwallet(db, claims.UserID, walletID); err != nil {
		if errors.Is(err, repositories.ErrChannelNotFound) {
			return appErrors.NotFound("E-wallet")
		}
		return appErrors.InternalError(err)
	}
	return nil
}
