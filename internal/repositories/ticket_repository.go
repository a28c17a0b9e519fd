package repositories

import (
	"errors"

	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepository interface {
	Create(db *gorm.DB, ticket *models.Ticket) error

	// FindByID загружает тикет вместе с декой и членством - всё, что нужно
	// политикам для решения о доступе.
	FindByID(db *gorm.DB, ticketID string) (*models.Ticket, error)

	ListByDeck(db *gorm.DB, deckID string) ([]models.Ticket, error)
	UpdateStatus(db *gorm.DB, ticketID string, status models.TicketStatus) error

	CreateComment(db *gorm.DB, comment *models.TicketComment) error
	ListComments(db *gorm.DB, ticketID string) ([]models.TicketComment, error)
}

type TicketRepositoryImpl struct{}

func NewTicketRepository() TicketRepository {
	return &TicketRepositoryImpl{}
}

func (r *TicketRepositoryImpl) Create(db *gorm.DB, ticket *models.Ticket) error {
	return db.Create(ticket).Error
}

func (r *TicketRepositoryImpl) FindByID(db *gorm.DB, ticketID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := db.
		Preload("Deck").
		Preload("Deck.Membership").
		Preload("Deck.Membership.Student").
		Preload("Deck.Coach").
		Preload("Author").
		First(&ticket, "id = ?", ticketID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) ListByDeck(db *gorm.DB, deckID string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := db.Where("deck_id = ?", deckID).Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepositoryImpl) UpdateStatus(db *gorm.DB, ticketID string, status models.TicketStatus) error {
	result := db.Model(&models.Ticket{}).Where("id = ?", ticketID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepositoryImpl) CreateComment(db *gorm.DB, comment *models.TicketComment) error {
	return db.Create(comment).Error
}

func (r *TicketRepositoryImpl) ListComments(db *gorm.DB, ticketID string) ([]models.TicketComment, error) {
	var comments []models.TicketComment
	err := db.Preload("Author").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
