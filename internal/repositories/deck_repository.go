package repositories

import (
	"errors"

	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

var (
	ErrDeckNotFound     = errors.New("deck not found")
	ErrDocumentNotFound = errors.New("document not found")
)

type DeckRepository interface {
	// CreateWithMembership создает деку и членство одной транзакцией:
	// либо сохраняются обе записи, либо ни одной.
	CreateWithMembership(db *gorm.DB, deck *models.Deck, studentID string) error

	// FindScopedByID применяет tenant-скоуп прямо в запросе: для не-админа
	// чужая дека неотличима от несуществующей (ErrDeckNotFound, не Forbidden).
	FindScopedByID(db *gorm.DB, deckID, actorID string, isSuperAdmin bool) (*models.Deck, error)

	ListFor(db *gorm.DB, actorID string, isSuperAdmin bool) ([]models.Deck, error)

	// Document operations
	CreateDocument(db *gorm.DB, doc *models.Document) error
	ListDocuments(db *gorm.DB, deckID string) ([]models.Document, error)
	FindDocument(db *gorm.DB, deckID, docID string) (*models.Document, error)
	DeleteDocument(db *gorm.DB, deckID, docID string) error
}

type DeckRepositoryImpl struct{}

func NewDeckRepository() DeckRepository {
	return &DeckRepositoryImpl{}
}

func (r *DeckRepositoryImpl) CreateWithMembership(db *gorm.DB, deck *models.Deck, studentID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(deck).Error; err != nil {
			return err
		}
		membership := &models.Membership{
			DeckID:    deck.ID,
			StudentID: studentID,
		}
		if err := tx.Create(membership).Error; err != nil {
			return err
		}
		deck.Membership = membership
		return nil
	})
}

func (r *DeckRepositoryImpl) scoped(db *gorm.DB, actorID string, isSuperAdmin bool) *gorm.DB {
	query := db.Model(&models.Deck{})
	if isSuperAdmin {
		return query
	}
	return query.Where(
		"coach_id = ? OR id IN (?)",
		actorID,
		db.Model(&models.Membership{}).Select("deck_id").Where("student_id = ?", actorID),
	)
}

func (r *DeckRepositoryImpl) FindScopedByID(db *gorm.DB, deckID, actorID string, isSuperAdmin bool) (*models.Deck, error) {
	var deck models.Deck
	err := r.scoped(db, actorID, isSuperAdmin).
		Preload("Coach").
		Preload("Membership").
		Preload("Membership.Student").
		First(&deck, "decks.id = ?", deckID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, err
	}
	return &deck, nil
}

func (r *DeckRepositoryImpl) ListFor(db *gorm.DB, actorID string, isSuperAdmin bool) ([]models.Deck, error) {
	var decks []models.Deck
	err := r.scoped(db, actorID, isSuperAdmin).
		Preload("Coach").
		Preload("Membership").
		Preload("Membership.Student").
		Order("created_at DESC").
		Find(&decks).Error
	return decks, err
}

// Document operations

func (r *DeckRepositoryImpl) CreateDocument(db *gorm.DB, doc *models.Document) error {
	return db.Create(doc).Error
}

func (r *DeckRepositoryImpl) ListDocuments(db *gorm.DB, deckID string) ([]models.Document, error) {
	var docs []models.Document
	err := db.Where("deck_id = ?", deckID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DeckRepositoryImpl) FindDocument(db *gorm.DB, deckID, docID string) (*models.Document, error) {
	var doc models.Document
	err := db.First(&doc, "id = ? AND deck_id = ?", docID, deckID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DeckRepositoryImpl) DeleteDocument(db *gorm.DB, deckID, docID string) error {
	result := db.Delete(&models.Document{}, "id = ? AND deck_id = ?", docID, deckID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
