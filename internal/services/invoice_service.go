package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/repositories"
	"coachdeck_backend/internal/services/dto"
	"coachdeck_backend/internal/storage"
)

// InvoiceService - счета студентов коучам. Сумма и валюта снимаются
// с тарифа в момент создания, дальше живут своей жизнью.
type InvoiceService interface {
	CreateInvoice(db *gorm.DB, claims *auth.Claims, req *dto.CreateInvoiceRequest) (*models.Invoice, error)
	ListInvoices(db *gorm.DB, claims *auth.Claims) ([]models.Invoice, error)
	GetInvoice(db *gorm.DB, claims *auth.Claims, invoiceID string) (*models.Invoice, error)
	UpdateStatus(db *gorm.DB, claims *auth.Claims, invoiceID string, req *dto.UpdateInvoiceStatusRequest) (*models.Invoice, error)

	// UploadProof принимает чек оплаты от студента инвойса и переводит
	// инвойс в SUBMITTED.
	UploadProof(ctx context.Context, db *gorm.DB, claims *auth.Claims, invoiceID string, file *multipart.FileHeader) (*models.Invoice, error)
}

type InvoiceServiceImpl struct {
	invoiceRepo         repositories.InvoiceRepository
	paymentRepo         repositories.PaymentRepository
	userRepo            repositories.UserRepository
	fileStorage         storage.Storage
	notificationService NotificationService
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	fileStorage storage.Storage,
	notificationService NotificationService,
) InvoiceService {
	return &InvoiceServiceImpl{
		invoiceRepo:         invoiceRepo,
		paymentRepo:         paymentRepo,
		userRepo:            userRepo,
		fileStorage:         fileStorage,
		notificationService: notificationService,
	}
}

func (s *InvoiceServiceImpl) CreateInvoice(db *gorm.DB, claims *auth.Claims, req *dto.CreateInvoiceRequest) (*models.Invoice, error) {
	if claims.Role != models.UserRoleStudent {
		return nil, appErrors.ErrForbidden
	}

	plan, err := s.paymentRepo.FindPlanByID(db, req.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, appErrors.ErrPlanUnavailable
		}
		return nil, appErrors.InternalError(err)
	}
	// Тариф должен принадлежать указанному коучу и быть активным.
	if plan.CoachID != req.CoachID || !plan.Active {
		return nil, appErrors.ErrPlanUnavailable
	}

	channel, err := s.resolveChannel(db, req.CoachID, req.Channel)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		StudentID: claims.UserID,
		CoachID:   req.CoachID,
		PlanID:    &plan.ID,
		Amount:    plan.Amount,
		Currency:  plan.Currency,
		Channel:   channel,
		Status:    models.InvoiceStatusPending,
	}
	if err := s.invoiceRepo.Create(db, invoice); err != nil {
		return nil, appErrors.InternalError(err)
	}
	invoice.Plan = plan
	return invoice, nil
}

// resolveChannel: явный канал проверяется на включенность у коуча,
// без явного берется первый включенный (банк предпочтительнее).
func (s *InvoiceServiceImpl) resolveChannel(db *gorm.DB, coachID, requested string) (models.PaymentChannel, error) {
	cfg, err := s.paymentRepo.GetOrCreateConfig(db, coachID)
	if err != nil {
		return "", appErrors.InternalError(err)
	}

	if requested != "" {
		ch := models.PaymentChannel(requested)
		if !models.ValidChannel(ch) {
			return "", appErrors.ErrInvalidStatus
		}
		if ch == models.ChannelBank && !cfg.EnableBank {
			return "", appErrors.ErrNoPaymentChannels
		}
		if ch == models.ChannelEwallet && !cfg.EnableEwallet {
			return "", appErrors.ErrNoPaymentChannels
		}
		return ch, nil
	}

	switch {
	case cfg.EnableBank:
		return models.ChannelBank, nil
	case cfg.EnableEwallet:
		return models.ChannelEwallet, nil
	default:
		return "", appErrors.ErrNoPaymentChannels
	}
}

func (s *InvoiceServiceImpl) ListInvoices(db *gorm.DB, claims *auth.Claims) ([]models.Invoice, error) {
	invoices, err := s.invoiceRepo.ListFor(db, claims.UserID, auth.IsSuperAdmin(claims))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return invoices, nil
}

func (s *InvoiceServiceImpl) GetInvoice(db *gorm.DB, claims *auth.Claims, invoiceID string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindScopedByID(db, invoiceID, claims.UserID, auth.IsSuperAdmin(claims))
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, appErrors.ErrInvoiceNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return invoice, nil
}

func (s *InvoiceServiceImpl) UpdateStatus(db *gorm.DB, claims *auth.Claims, invoiceID string, req *dto.UpdateInvoiceStatusRequest) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(db, claims, invoiceID)
	if err != nil {
		return nil, err
	}

	status := models.InvoiceStatus(req.Status)
	if !models.ValidInvoiceStatus(status) {
		return nil, appErrors.ErrInvalidStatus
	}
	if !auth.CanMutateInvoiceStatus(claims, invoice) {
		return nil, appErrors.ErrForbidden
	}

	if err := s.invoiceRepo.UpdateStatus(db, invoice.ID, status); err != nil {
		return nil, appErrors.InternalError(err)
	}
	invoice.Status = status

	s.notificationService.NotifyInvoiceStatus(db, invoice, s.loadStudent(db, invoice))
	return invoice, nil
}

func (s *InvoiceServiceImpl) UploadProof(ctx context.Context, db *gorm.DB, claims *auth.Claims, invoiceID string, file *multipart.FileHeader) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(db, claims, invoiceID)
	if err != nil {
		return nil, err
	}
	if !auth.CanUploadInvoiceProof(claims, invoice) {
		return nil, appErrors.ErrForbidden
	}

	if file == nil {
		return nil, appErrors.ErrFileRequired
	}
	maxSize := config.GetConfig().Upload.MaxProofSize
	if file.Size > maxSize {
		return nil, appErrors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("proofs/%s/%d%s", invoice.ID, time.Now().UnixNano(), ext)
	if err := s.fileStorage.Save(ctx, key, src); err != nil {
		return nil, appErrors.InternalError(err)
	}

	proofURL := s.fileStorage.GetURL(key)
	if err := s.invoiceRepo.SetProof(db, invoice.ID, proofURL); err != nil {
		return nil, appErrors.InternalError(err)
	}
	invoice.ProofURL = proofURL
	invoice.Status = models.InvoiceStatusSubmitted
	return invoice, nil
}

func (s *InvoiceServiceImpl) loadStudent(db *gorm.DB, invoice *models.Invoice) *models.User {
	if invoice.Student != nil {
		return invoice.Student
	}
	student, err := s.userRepo.FindByID(db, invoice.StudentID)
	if err != nil {
		return nil
	}
	return student
}
