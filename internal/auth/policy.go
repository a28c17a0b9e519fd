package auth

import (
	"coachdeck_backend/internal/models"
)

// Чистые функции авторизации. Никаких побочных эффектов: actor и ресурс
// загружаются вызывающей стороной, здесь только решение да/нет.
//
// Единственное место, где склеены role и accessLevel: везде дальше по коду
// используется IsSuperAdmin, а не прямые сравнения полей.

// IsSuperAdmin: accessLevel == ADMIN ИЛИ role == SUPER_ADMIN.
func IsSuperAdmin(c *Claims) bool {
	return c.AccessLevel == models.AccessLevelAdmin || c.Role == models.UserRoleSuperAdmin
}

// IsSuperAdminUser - тот же предикат над строкой users (для выпуска токена
// и server-side проверок вне запроса).
func IsSuperAdminUser(u *models.User) bool {
	return u.AccessLevel == models.AccessLevelAdmin || u.Role == models.UserRoleSuperAdmin
}

// CanAccessDeck: коуч дека, студент-участник или супер-админ.
func CanAccessDeck(c *Claims, deck *models.Deck) bool {
	if IsSuperAdmin(c) {
		return true
	}
	if deck.CoachID == c.UserID {
		return true
	}
	return deck.Membership != nil && deck.Membership.StudentID == c.UserID
}

// CanMutateTicketStatus: коуч дека или супер-админ. Студент - никогда.
func CanMutateTicketStatus(c *Claims, ticket *models.Ticket) bool {
	if IsSuperAdmin(c) {
		return true
	}
	return ticket.Deck != nil && ticket.Deck.CoachID == c.UserID
}

// CanCommentOnTicket: автор, исполнитель, коуч дека или студент-участник.
func CanCommentOnTicket(c *Claims, ticket *models.Ticket) bool {
	if ticket.AuthorID == c.UserID {
		return true
	}
	if ticket.AssigneeID != nil && *ticket.AssigneeID == c.UserID {
		return true
	}
	if ticket.Deck == nil {
		return false
	}
	if ticket.Deck.CoachID == c.UserID {
		return true
	}
	return ticket.Deck.Membership != nil && ticket.Deck.Membership.StudentID == c.UserID
}

// CanManageDeckDocuments: коуч дека или супер-админ.
func CanManageDeckDocuments(c *Claims, deck *models.Deck) bool {
	return IsSuperAdmin(c) || deck.CoachID == c.UserID
}

// CanManageCoachPaymentResource: роль COACH и ресурс принадлежит актору.
// Супер-админ здесь прав не получает: платежные реквизиты правит только владелец.
func CanManageCoachPaymentResource(c *Claims, ownerID string) bool {
	return c.Role == models.UserRoleCoach && ownerID == c.UserID
}

// CanMutateInvoiceStatus: коуч инвойса или супер-админ.
func CanMutateInvoiceStatus(c *Claims, invoice *models.Invoice) bool {
	return IsSuperAdmin(c) || invoice.CoachID == c.UserID
}

// CanUploadInvoiceProof: студент инвойса, и только он.
func CanUploadInvoiceProof(c *Claims, invoice *models.Invoice) bool {
	return c.Role == models.UserRoleStudent && invoice.StudentID == c.UserID
}

// CanCreateDeck: роль COACH или повышенный accessLevel.
func CanCreateDeck(c *Claims) bool {
	return c.Role == models.UserRoleCoach || c.AccessLevel == models.AccessLevelAdmin
}
