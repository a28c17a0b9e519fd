package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/checkout"
	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/repositories"
	"coachdeck_backend/internal/services/dto"
)

// Платформенные тарифы для checkout-сессий
const (
	PlatformPlanStarter = "STARTER"
	PlatformPlanPro     = "PRO"
)

// PlatformService - глобальная конфигурация и платформенный биллинг.
// Конфиг и цены читаются lookup-or-default и пишутся upsert-ом.
type PlatformService interface {
	GetAdminConfig(db *gorm.DB) (*models.AdminConfig, error)
	UpdateAdminConfig(db *gorm.DB, req *dto.UpdateAdminConfigRequest) (*models.AdminConfig, error)

	GetPlanPricing(db *gorm.DB) (*models.PlanPricing, error)
	UpdatePlanPricing(db *gorm.DB, req *dto.UpdatePlanPricingRequest) (*models.PlanPricing, error)

	// CreateCheckoutSession дергает внешнего провайдера. Любой его сбой
	// наружу отдается как 502.
	CreateCheckoutSession(ctx context.Context, db *gorm.DB, claims *auth.Claims, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error)
}

type PlatformServiceImpl struct {
	platformRepo repositories.PlatformRepository
	userRepo     repositories.UserRepository
}

func NewPlatformService(platformRepo repositories.PlatformRepository, userRepo repositories.UserRepository) PlatformService {
	return &PlatformServiceImpl{
		platformRepo: platformRepo,
		userRepo:     userRepo,
	}
}

func (s *PlatformServiceImpl) GetAdminConfig(db *gorm.DB) (*models.AdminConfig, error) {
	cfg, err := s.platformRepo.GetOrCreateAdminConfig(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return cfg, nil
}

func (s *PlatformServiceImpl) UpdateAdminConfig(db *gorm.DB, req *dto.UpdateAdminConfigRequest) (*models.AdminConfig, error) {
	cfg, err := s.platformRepo.GetOrCreateAdminConfig(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if req.CheckoutWebhookURL != nil {
		cfg.CheckoutWebhookURL = *req.CheckoutWebhookURL
	}
	if req.SupportEmail != nil {
		cfg.SupportEmail = *req.SupportEmail
	}

	if err := s.platformRepo.UpdateAdminConfig(db, cfg); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return cfg, nil
}

func (s *PlatformServiceImpl) GetPlanPricing(db *gorm.DB) (*models.PlanPricing, error) {
	pricing, err := s.platformRepo.GetOrCreatePlanPricing(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return pricing, nil
}

func (s *PlatformServiceImpl) UpdatePlanPricing(db *gorm.DB, req *dto.UpdatePlanPricingRequest) (*models.PlanPricing, error) {
	pricing, err := s.platformRepo.GetOrCreatePlanPricing(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if req.StarterAmount != nil {
		pricing.StarterAmount = *req.StarterAmount
	}
	if req.ProAmount != nil {
		pricing.ProAmount = *req.ProAmount
	}
	if req.Currency != nil {
		pricing.Currency = *req.Currency
	}
	if req.StarterFeatures != nil {
		raw, merr := json.Marshal(req.StarterFeatures)
		if merr != nil {
			return nil, appErrors.InternalError(merr)
		}
		pricing.StarterFeatures = raw
	}
	if req.ProFeatures != nil {
		raw, merr := json.Marshal(req.ProFeatures)
		if merr != nil {
			return nil, appErrors.InternalError(merr)
		}
		pricing.ProFeatures = raw
	}

	if err := s.platformRepo.UpdatePlanPricing(db, pricing); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return pricing, nil
}

func (s *PlatformServiceImpl) CreateCheckoutSession(ctx context.Context, db *gorm.DB, claims *auth.Claims, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	pricing, err := s.platformRepo.GetOrCreatePlanPricing(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	var amount int64
	switch req.Plan {
	case PlatformPlanStarter:
		amount = pricing.StarterAmount
	case PlatformPlanPro:
		amount = pricing.ProAmount
	default:
		return nil, appErrors.NewBadRequestError("plan must be STARTER or PRO")
	}
	if amount <= 0 {
		return nil, appErrors.ErrPlanUnavailable
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	// Webhook URL из базы приоритетнее статического конфига.
	adminCfg, err := s.platformRepo.GetOrCreateAdminConfig(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	appCfg := config.GetConfig()
	webhookURL := adminCfg.CheckoutWebhookURL
	if webhookURL == "" {
		webhookURL = appCfg.Checkout.WebhookURL
	}

	client := checkout.NewClient(webhookURL, time.Duration(appCfg.Checkout.TimeoutSec)*time.Second)
	redirectURL, err := client.CreateSession(ctx, &checkout.PaymentRequest{
		ReferenceID:   fmt.Sprintf("%s-%s-%d", claims.UserID, req.Plan, time.Now().Unix()),
		Amount:        amount,
		Currency:      pricing.Currency,
		Description:   fmt.Sprintf("CoachDeck %s plan", req.Plan),
		CustomerEmail: user.Email,
	})
	if err != nil {
		logger.Error("checkout session failed", "user_id", claims.UserID, "plan", req.Plan, "error", err)
		return nil, appErrors.ErrCheckoutFailed
	}

	return &dto.CheckoutSessionResponse{RedirectURL: redirectURL}, nil
}
