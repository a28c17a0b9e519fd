package handlers

import (
	"coachdeck_backend/internal/services"
	"coachdeck_backend/internal/storage"
	"coachdeck_backend/internal/validator"
)

// AppHandlers собирает все HTTP-хендлеры приложения
type AppHandlers struct {
	Auth         *AuthHandler
	Admin        *AdminHandler
	Deck         *DeckHandler
	Ticket       *TicketHandler
	Payment      *PaymentHandler
	Invoice      *InvoiceHandler
	Checkout     *CheckoutHandler
	Notification *NotificationHandler
	File         *FileHandler
}

// NewAppHandlers строит хендлеры поверх контейнера сервисов
func NewAppHandlers(sc *services.ServiceContainer, fileStorage storage.Storage) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.Auth),
		Admin:        NewAdminHandler(base, sc.Account, sc.Platform),
		Deck:         NewDeckHandler(base, sc.Deck),
		Ticket:       NewTicketHandler(base, sc.Ticket),
		Payment:      NewPaymentHandler(base, sc.Payment),
		Invoice:      NewInvoiceHandler(base, sc.Invoice),
		Checkout:     NewCheckoutHandler(base, sc.Platform),
		Notification: NewNotificationHandler(base, sc.Notification),
		File:         NewFileHandler(base, fileStorage),
	}
}
