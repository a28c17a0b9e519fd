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

// DeckService - деки и их документы. Правило доступа одно: чужая дека
// неотличима от несуществующей.
type DeckService interface {
	CreateDeck(db *gorm.DB, claims *auth.Claims, req *dto.CreateDeckRequest) (*models.Deck, error)
	ListDecks(db *gorm.DB, claims *auth.Claims) ([]models.Deck, error)
	GetDeck(db *gorm.DB, claims *auth.Claims, deckID string) (*models.Deck, error)

	AddDocument(db *gorm.DB, claims *auth.Claims, deckID string, req *dto.AddDocumentRequest) (*models.Document, error)
	ListDocuments(db *gorm.DB, claims *auth.Claims, deckID string) ([]models.Document, error)
	DeleteDocument(db *gorm.DB, claims *auth.Claims, deckID, docID string) error
}

type DeckServiceImpl struct {
	deckRepo            repositories.DeckRepository
	accountService      AccountService
	notificationService NotificationService
}

func NewDeckService(deckRepo repositories.DeckRepository, accountService AccountService, notificationService NotificationService) DeckService {
	return &DeckServiceImpl{
		deckRepo:            deckRepo,
		accountService:      accountService,
		notificationService: notificationService,
	}
}

// CreateDeck: студент провиженится до транзакции (аккаунт полезен и при
// откате), дека с членством создаются атомарно.
func (s *DeckServiceImpl) CreateDeck(db *gorm.DB, claims *auth.Claims, req *dto.CreateDeckRequest) (*models.Deck, error) {
	if !auth.CanCreateDeck(claims) {
		return nil, appErrors.ErrForbidden
	}

	student, tempPassword, err := s.accountService.ProvisionStudent(db, req.StudentEmail, req.StudentName)
	if err != nil {
		return nil, err
	}

	deck := &models.Deck{
		Name:    req.Name,
		CoachID: claims.UserID,
	}
	if err := s.deckRepo.CreateWithMembership(db, deck, student.ID); err != nil {
		return nil, appErrors.InternalError(err)
	}
	if deck.Membership != nil {
		deck.Membership.Student = student
	}

	// Welcome-письмо уходит только новым аккаунтам.
	if tempPassword != "" {
		coachName := claims.UserID
		if loaded, err := s.loadCoachName(db, claims.UserID); err == nil {
			coachName = loaded
		}
		s.notificationService.NotifyStudentWelcome(student, coachName, deck.Name, tempPassword)
	}
	return deck, nil
}

func (s *DeckServiceImpl) loadCoachName(db *gorm.DB, coachID string) (string, error) {
	var coach models.User
	if err := db.Select("name").First(&coach, "id = ?", coachID).Error; err != nil {
		return "", err
	}
	return coach.Name, nil
}

func (s *DeckServiceImpl) ListDecks(db *gorm.DB, claims *auth.Claims) ([]models.Deck, error) {
	decks, err := s.deckRepo.ListFor(db, claims.UserID, auth.IsSuperAdmin(claims))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return decks, nil
}

func (s *DeckServiceImpl) GetDeck(db *gorm.DB, claims *auth.Claims, deckID string) (*models.Deck, error) {
	deck, err := s.deckRepo.FindScopedByID(db, deckID, claims.UserID, auth.IsSuperAdmin(claims))
	if err != nil {
		if errors.Is(err, repositories.ErrDeckNotFound) {
			return nil, appErrors.ErrDeckNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return deck, nil
}

func (s *DeckServiceImpl) AddDocument(db *gorm.DB, claims *auth.Claims, deckID string, req *dto.AddDocumentRequest) (*models.Document, error) {
	deck, err := s.GetDeck(db, claims, deckID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageDeckDocuments(claims, deck) {
		return nil, appErrors.ErrForbidden
	}

	doc := &models.Document{
		DeckID:  deck.ID,
		Title:   req.Title,
		URL:     req.URL,
		AddedBy: claims.UserID,
	}
	if err := s.deckRepo.CreateDocument(db, doc); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return doc, nil
}

func (s *DeckServiceImpl) ListDocuments(db *gorm.DB, claims *auth.Claims, deckID string) ([]models.Document, error) {
	if _, err := s.GetDeck(db, claims, deckID); err != nil {
		return nil, err
	}
	docs, err := s.deckRepo.ListDocuments(db, deckID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return docs, nil
}

func (s *DeckServiceImpl) DeleteDocument(db *gorm.DB, claims *auth.Claims, deckID, docID string) error {
	deck, err := s.GetDeck(db, claims, deckID)
	if err != nil {
		return err
	}
	if !auth.CanManageDeckDocuments(claims, deck) {
		return appErrors.ErrForbidden
	}

	if err := s.deckRepo.DeleteDocument(db, deckID, docID); err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return appErrors.NotFound("Document")
		}
		return appErrors.InternalError(err)
	}
	return nil
}
