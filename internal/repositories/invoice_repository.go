package repositories

import (
	"errors"

	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *models.Invoice) error

	// FindScopedByID: студент видит свои инвойсы, коуч - выставленные ему,
	// супер-админ - все. Чужой инвойс неотличим от несуществующего.
	FindScopedByID(db *gorm.DB, invoiceID, actorID string, isSuperAdmin bool) (*models.Invoice, error)

	ListFor(db *gorm.DB, actorID string, isSuperAdmin bool) ([]models.Invoice, error)

	UpdateStatus(db *gorm.DB, invoiceID string, status models.InvoiceStatus) error

	// SetProof выставляет proof_url и статус SUBMITTED одним апдейтом.
	SetProof(db *gorm.DB, invoiceID, proofURL string) error
}

type InvoiceRepositoryImpl struct{}

func NewInvoiceRepository() InvoiceRepository {
	return &InvoiceRepositoryImpl{}
}

func (r *InvoiceRepositoryImpl) Create(db *gorm.DB, invoice *models.Invoice) error {
	return db.Create(invoice).Error
}

func (r *InvoiceRepositoryImpl) scoped(db *gorm.DB, actorID string, isSuperAdmin bool) *gorm.DB {
	query := db.Model(&models.Invoice{})
	if isSuperAdmin {
		return query
	}
	return query.Where("student_id = ? OR coach_id = ?", actorID, actorID)
}

func (r *InvoiceRepositoryImpl) FindScopedByID(db *gorm.DB, invoiceID, actorID string, isSuperAdmin bool) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.scoped(db, actorID, isSuperAdmin).
		Preload("Student").
		Preload("Coach").
		Preload("Plan").
		First(&invoice, "invoices.id = ?", invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepositoryImpl) ListFor(db *gorm.DB, actorID string, isSuperAdmin bool) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.scoped(db, actorID, isSuperAdmin).
		Preload("Plan").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepositoryImpl) UpdateStatus(db *gorm.DB, invoiceID string, status models.InvoiceStatus) error {
	result := db.Model(&models.Invoice{}).Where("id = ?", invoiceID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepositoryImpl) SetProof(db *gorm.DB, invoiceID, proofURL string) error {
	result := db.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(map[string]interface{}{
		"proof_url": proofURL,
		"status":    models.InvoiceStatusSubmitted,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
