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

// TicketService - тикеты внутри деки. Видимость наследуется от деки,
// мутация статуса - привилегия коуча и супер-админа.
type TicketService interface {
	CreateTicket(db *gorm.DB, claims *auth.Claims, deckID string, req *dto.CreateTicketRequest) (*models.Ticket, error)
	ListTickets(db *gorm.DB, claims *auth.Claims, deckID string) ([]models.Ticket, error)
	GetTicket(db *gorm.DB, claims *auth.Claims, ticketID string) (*models.Ticket, error)
	UpdateStatus(db *gorm.DB, claims *auth.Claims, ticketID string, req *dto.UpdateTicketStatusRequest) (*models.Ticket, error)

	AddComment(db *gorm.DB, claims *auth.Claims, ticketID string, req *dto.CreateCommentRequest) (*models.TicketComment, error)
	ListComments(db *gorm.DB, claims *auth.Claims, ticketID string) ([]models.TicketComment, error)
}

type TicketServiceImpl struct {
	ticketRepo          repositories.TicketRepository
	deckRepo            repositories.DeckRepository
	notificationService NotificationService
}

func NewTicketService(ticketRepo repositories.TicketRepository, deckRepo repositories.DeckRepository, notificationService NotificationService) TicketService {
	return &TicketServiceImpl{
		ticketRepo:          ticketRepo,
		deckRepo:            deckRepo,
		notificationService: notificationService,
	}
}

func (s *TicketServiceImpl) CreateTicket(db *gorm.DB, claims *auth.Claims, deckID string, req *dto.CreateTicketRequest) (*models.Ticket, error) {
	deck, err := s.deckRepo.FindScopedByID(db, deckID, claims.UserID, auth.IsSuperAdmin(claims))
	if err != nil {
		if errors.Is(err, repositories.ErrDeckNotFound) {
			return nil, appErrors.ErrDeckNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	ticket := &models.Ticket{
		DeckID:   deck.ID,
		Title:    req.Title,
		Body:     req.Body,
		Status:   models.TicketStatusOpen,
		AuthorID: claims.UserID,
	}
	if err := s.ticketRepo.Create(db, ticket); err != nil {
		return nil, appErrors.InternalError(err)
	}
	ticket.Deck = deck

	s.notificationService.NotifyTicketEvent(db, ticket,
		s.counterparties(deck, claims.UserID),
		NotificationTicketCreated, "New ticket")
	return ticket, nil
}

func (s *TicketServiceImpl) ListTickets(db *gorm.DB, claims *auth.Claims, deckID string) ([]models.Ticket, error) {
	if _, err := s.deckRepo.FindScopedByID(db, deckID, claims.UserID, auth.IsSuperAdmin(claims)); err != nil {
		if errors.Is(err, repositories.ErrDeckNotFound) {
			return nil, appErrors.ErrDeckNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	tickets, err := s.ticketRepo.ListByDeck(db, deckID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return tickets, nil
}

// GetTicket: доступ вычисляется по деке тикета. Недоступный тикет
// отдается как 404, не как 403.
func (s *TicketServiceImpl) GetTicket(db *gorm.DB, claims *auth.Claims, ticketID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(db, ticketID)
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return nil, appErrors.ErrTicketNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if ticket.Deck == nil || !auth.CanAccessDeck(claims, ticket.Deck) {
		return nil, appErrors.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *TicketServiceImpl) UpdateStatus(db *gorm.DB, claims *auth.Claims, ticketID string, req *dto.UpdateTicketStatusRequest) (*models.Ticket, error) {
	ticket, err := s.GetTicket(db, claims, ticketID)
	if err != nil {
		return nil, err
	}

	status := models.TicketStatus(req.Status)
	if !models.ValidTicketStatus(status) {
		return nil, appErrors.ErrInvalidStatus
	}
	if !auth.CanMutateTicketStatus(claims, ticket) {
		return nil, appErrors.ErrForbidden
	}

	if err := s.ticketRepo.UpdateStatus(db, ticket.ID, status); err != nil {
		return nil, appErrors.InternalError(err)
	}
	ticket.Status = status

	s.notificationService.NotifyTicketEvent(db, ticket,
		s.counterparties(ticket.Deck, claims.UserID),
		NotificationTicketStatus, "Ticket status changed")
	return ticket, nil
}

func (s *TicketServiceImpl) AddComment(db *gorm.DB, claims *auth.Claims, ticketID string, req *dto.CreateCommentRequest) (*models.TicketComment, error) {
	ticket, err := s.GetTicket(db, claims, ticketID)
	if err != nil {
		return nil, err
	}
	if !auth.CanCommentOnTicket(claims, ticket) {
		return nil, appErrors.ErrForbidden
	}

	comment := &models.TicketComment{
		TicketID: ticket.ID,
		AuthorID: claims.UserID,
		Body:     req.Body,
	}
	if err := s.ticketRepo.CreateComment(db, comment); err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.notificationService.NotifyTicketEvent(db, ticket,
		s.counterparties(ticket.Deck, claims.UserID),
		NotificationTicketComment, "New comment")
	return comment, nil
}

func (s *TicketServiceImpl) ListComments(db *gorm.DB, claims *auth.Claims, ticketID string) ([]models.TicketComment, error) {
	if _, err := s.GetTicket(db, claims, ticketID); err != nil {
		return nil, err
	}
	comments, err := s.ticketRepo.ListComments(db, ticketID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return comments, nil
}

// counterparties возвращает участников деки кроме актора:
// событие получает другая сторона, не его автор.
func (s *TicketServiceImpl) counterparties(deck *models.Deck, actorID string) []*models.User {
	if deck == nil {
		return nil
	}
	var recipients []*models.User
	if deck.Coach != nil && deck.Coach.ID != actorID {
		recipients = append(recipients, deck.Coach)
	}
	if deck.Membership != nil && deck.Membership.Student != nil && deck.Membership.Student.ID != actorID {
		recipients = append(recipients, deck.Membership.Student)
	}
	return recipients
}
