package services

import (
	"coachdeck_backend/internal/email"
	"coachdeck_backend/internal/repositories"
	"coachdeck_backend/internal/storage"
)

// ServiceContainer собирает все сервисы приложения
type ServiceContainer struct {
	Auth         AuthService
	Account      AccountService
	Deck         DeckService
	Ticket       TicketService
	Payment      PaymentService
	Invoice      InvoiceService
	Platform     PlatformService
	Notification NotificationService
}

// NewServiceContainer строит граф сервисов поверх репозиториев
func NewServiceContainer(emailProvider email.Provider, fileStorage storage.Storage) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	deckRepo := repositories.NewDeckRepository()
	ticketRepo := repositories.NewTicketRepository()
	paymentRepo := repositories.NewPaymentRepository()
	invoiceRepo := repositories.NewInvoiceRepository()
	platformRepo := repositories.NewPlatformRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notificationService := NewNotificationService(notificationRepo, emailProvider)
	accountService := NewAccountService(userRepo, notificationService)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, notificationService),
		Account:      accountService,
		Deck:         NewDeckService(deckRepo, accountService, notificationService),
		Ticket:       NewTicketService(ticketRepo, deckRepo, notificationService),
		Payment:      NewPaymentService(paymentRepo),
		Invoice:      NewInvoiceService(invoiceRepo, paymentRepo, userRepo, fileStorage, notificationService),
		Platform:     NewPlatformService(platformRepo, userRepo),
		Notification: notificationService,
	}
}
