package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/email"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/models"
	"coachdeck_backend/internal/repositories"
)

// Типы нотификаций для колокольчика
const (
	NotificationCoachSignup   = "coach_signup"
	NotificationCoachDecision = "coach_decision"
	NotificationTicketCreated = "ticket_created"
	NotificationTicketStatus  = "ticket_status"
	NotificationTicketComment = "ticket_comment"
	NotificationInvoiceStatus = "invoice_status"
)

// NotificationService пишет уведомление в базу синхронно, письмо шлет
// асинхронно. Сбой доставки логируется и глотается: мутация, породившая
// событие, от почты не зависит.
type NotificationService interface {
	List(db *gorm.DB, userID string, limit int) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
	MarkAllRead(db *gorm.DB, userID string) error

	NotifyAdminsCoachSignup(db *gorm.DB, coach *models.User) error
	NotifyCoachDecision(db *gorm.DB, coach *models.User, approved bool) error
	NotifyStudentWelcome(student *models.User, coachName, deckName, tempPassword string)
	NotifyTicketEvent(db *gorm.DB, ticket *models.Ticket, recipients []*models.User, notifType, event string)
	NotifyInvoiceStatus(db *gorm.DB, invoice *models.Invoice, student *models.User)
	SendPasswordReset(user *models.User, token string)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, emailProvider email.Provider) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
	}
}

func (s *NotificationServiceImpl) List(db *gorm.DB, userID string, limit int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(db, userID, limit)
}

func (s *NotificationServiceImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(db, userID)
}

func (s *NotificationServiceImpl) MarkRead(db *gorm.DB, userID, notificationID string) error {
	return s.notificationRepo.MarkRead(db, userID, notificationID)
}

func (s *NotificationServiceImpl) MarkAllRead(db *gorm.DB, userID string) error {
	return s.notificationRepo.MarkAllRead(db, userID)
}

// record пишет строку колокольчика. Ошибка записи логируется, не возвращается:
// уведомления best-effort даже внутри транзакции вызывающего.
func (s *NotificationServiceImpl) record(db *gorm.DB, userID, notifType, title, message string, data map[string]string) {
	var payload datatypes.JSON
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err == nil {
			payload = raw
		}
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Error("failed to record notification", "user_id", userID, "type", notifType, "error", err)
	}
}

// sendAsync шлет письмо в отдельной горутине
func (s *NotificationServiceImpl) sendAsync(to []string, subject, templateName string, data email.TemplateData) {
	go func() {
		if err := s.emailProvider.SendTemplate(to, subject, templateName, data); err != nil {
			logger.Error("failed to send notification email", "template", templateName, "error", err)
		}
	}()
}

// NotifyAdminsCoachSignup уведомляет всех активных супер-админов о новой
// заявке коуча. Возвращает ошибку только при сбое выборки админов.
func (s *NotificationServiceImpl) NotifyAdminsCoachSignup(db *gorm.DB, coach *models.User) error {
	var admins []models.User
	err := db.Where("status = ? AND (role = ? OR access_level = ?)",
		models.UserStatusActive, models.UserRoleSuperAdmin, models.AccessLevelAdmin).
		Find(&admins).Error
	if err != nil {
		return err
	}

	for i := range admins {
		admin := admins[i]
		s.record(db, admin.ID, NotificationCoachSignup,
			"New coach signup",
			fmt.Sprintf("Coach %s (%s) is waiting for approval", coach.Name, coach.Email),
			map[string]string{"coach_id": coach.ID})

		s.sendAsync([]string{admin.Email}, "New coach signup", email.TemplateCoachSignup, email.TemplateData{
			"AdminName":  admin.Name,
			"CoachName":  coach.Name,
			"CoachEmail": coach.Email,
		})
	}
	return nil
}

// NotifyCoachDecision уведомляет коуча о решении по заявке
func (s *NotificationServiceImpl) NotifyCoachDecision(db *gorm.DB, coach *models.User, approved bool) error {
	decision := "rejected"
	if approved {
		decision = "approved"
	}

	s.record(db, coach.ID, NotificationCoachDecision,
		"Account decision",
		fmt.Sprintf("Your coach account has been %s", decision),
		nil)

	s.sendAsync([]string{coach.Email}, "Your CoachDeck account", email.TemplateCoachDecision, email.TemplateData{
		"CoachName": coach.Name,
		"Decision":  decision,
		"Approved":  approved,
	})
	return nil
}

// NotifyStudentWelcome шлет welcome-письмо с временным паролем.
// Пароль существует только в этом письме, в базе лежит хеш.
func (s *NotificationServiceImpl) NotifyStudentWelcome(student *models.User, coachName, deckName, tempPassword string) {
	cfg := config.GetConfig()
	s.sendAsync([]string{student.Email}, "Welcome to CoachDeck", email.TemplateStudentWelcome, email.TemplateData{
		"CoachName":    coachName,
		"DeckName":     deckName,
		"Email":        student.Email,
		"TempPassword": tempPassword,
		"LoginURL":     cfg.Server.BaseURL + "/login",
	})
}

// NotifyTicketEvent рассылает событие тикета списку получателей.
// Актор, вызвавший событие, фильтруется вызывающей стороной.
func (s *NotificationServiceImpl) NotifyTicketEvent(db *gorm.DB, ticket *models.Ticket, recipients []*models.User, notifType, event string) {
	deckName := ""
	if ticket.Deck != nil {
		deckName = ticket.Deck.Name
	}

	for _, u := range recipients {
		if u == nil {
			continue
		}
		s.record(db, u.ID, notifType,
			event,
			fmt.Sprintf("%s: %s", event, ticket.Title),
			map[string]string{"ticket_id": ticket.ID, "deck_id": ticket.DeckID})

		s.sendAsync([]string{u.Email}, event, email.TemplateTicketEvent, email.TemplateData{
			"Name":        u.Name,
			"Event":       event,
			"DeckName":    deckName,
			"TicketTitle": ticket.Title,
		})
	}
}

// NotifyInvoiceStatus уведомляет студента о смене статуса инвойса
func (s *NotificationServiceImpl) NotifyInvoiceStatus(db *gorm.DB, invoice *models.Invoice, student *models.User) {
	if student == nil {
		return
	}
	s.record(db, student.ID, NotificationInvoiceStatus,
		"Invoice status changed",
		fmt.Sprintf("Invoice for %d %s is now %s", invoice.Amount, invoice.Currency, invoice.Status),
		map[string]string{"invoice_id": invoice.ID})

	s.sendAsync([]string{student.Email}, "Invoice update", email.TemplateInvoiceStatus, email.TemplateData{
		"Name":     student.Name,
		"Amount":   invoice.Amount,
		"Currency": invoice.Currency,
		"Status":   string(invoice.Status),
	})
}

// SendPasswordReset шлет ссылку сброса пароля. Без строки в колокольчике:
// письмо уходит и не-залогиненным.
func (s *NotificationServiceImpl) SendPasswordReset(user *models.User, token string) {
	cfg := config.GetConfig()
	s.sendAsync([]string{user.Email}, "Password reset", email.TemplatePasswordReset, email.TemplateData{
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", cfg.Server.BaseURL, token),
	})
}
