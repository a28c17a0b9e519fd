package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coachdeck_backend/internal/models"
)

func coachClaims(id string) *Claims {
	return &Claims{UserID: id, Role: models.UserRoleCoach, AccessLevel: models.AccessLevelUser}
}

func studentClaims(id string) *Claims {
	return &Claims{UserID: id, Role: models.UserRoleStudent, AccessLevel: models.AccessLevelUser}
}

func adminClaims(id string) *Claims {
	return &Claims{UserID: id, Role: models.UserRoleSuperAdmin, AccessLevel: models.AccessLevelAdmin}
}

func TestIsSuperAdmin(t *testing.T) {
	assert.True(t, IsSuperAdmin(adminClaims("a")))
	assert.True(t, IsSuperAdmin(&Claims{Role: models.UserRoleCoach, AccessLevel: models.AccessLevelAdmin}))
	assert.True(t, IsSuperAdmin(&Claims{Role: models.UserRoleSuperAdmin, AccessLevel: models.AccessLevelUser}))
	assert.False(t, IsSuperAdmin(coachClaims("c")))
	assert.False(t, IsSuperAdmin(studentClaims("s")))
}

func TestCanAccessDeck(t *testing.T) {
	deck := &models.Deck{
		CoachID:    "coach-1",
		Membership: &models.Membership{StudentID: "student-1"},
	}

	assert.True(t, CanAccessDeck(coachClaims("coach-1"), deck))
	assert.True(t, CanAccessDeck(studentClaims("student-1"), deck))
	assert.True(t, CanAccessDeck(adminClaims("someone"), deck))

	assert.False(t, CanAccessDeck(coachClaims("coach-2"), deck))
	assert.False(t, CanAccessDeck(studentClaims("student-2"), deck))
}

func TestCanAccessDeck_NoMembership(t *testing.T) {
	deck := &models.Deck{CoachID: "coach-1"}
	assert.True(t, CanAccessDeck(coachClaims("coach-1"), deck))
	assert.False(t, CanAccessDeck(studentClaims("student-1"), deck))
}

func TestCanMutateTicketStatus(t *testing.T) {
	ticket := &models.Ticket{
		AuthorID: "student-1",
		Deck: &models.Deck{
			CoachID:    "coach-1",
			Membership: &models.Membership{StudentID: "student-1"},
		},
	}

	assert.True(t, CanMutateTicketStatus(coachClaims("coach-1"), ticket))
	assert.True(t, CanMutateTicketStatus(adminClaims("x"), ticket))

	// Студент не двигает статус даже собственного тикета.
	assert.False(t, CanMutateTicketStatus(studentClaims("student-1"), ticket))
	assert.False(t, CanMutateTicketStatus(coachClaims("coach-2"), ticket))
}

func TestCanCommentOnTicket(t *testing.T) {
	assignee := "helper-1"
	ticket := &models.Ticket{
		AuthorID:   "student-1",
		AssigneeID: &assignee,
		Deck: &models.Deck{
			CoachID:    "coach-1",
			Membership: &models.Membership{StudentID: "student-1"},
		},
	}

	assert.True(t, CanCommentOnTicket(studentClaims("student-1"), ticket))
	assert.True(t, CanCommentOnTicket(coachClaims("coach-1"), ticket))
	assert.True(t, CanCommentOnTicket(coachClaims("helper-1"), ticket))
	assert.False(t, CanCommentOnTicket(studentClaims("outsider"), ticket))
}

func TestCanManageCoachPaymentResource(t *testing.T) {
	assert.True(t, CanManageCoachPaymentResource(coachClaims("coach-1"), "coach-1"))
	assert.False(t, CanManageCoachPaymentResource(coachClaims("coach-1"), "coach-2"))

	// Супер-админ платежные реквизиты не правит.
	assert.False(t, CanManageCoachPaymentResource(adminClaims("admin-1"), "coach-1"))
	assert.False(t, CanManageCoachPaymentResource(studentClaims("student-1"), "student-1"))
}

func TestCanMutateInvoiceStatus(t *testing.T) {
	invoice := &models.Invoice{StudentID: "student-1", CoachID: "coach-1"}

	assert.True(t, CanMutateInvoiceStatus(coachClaims("coach-1"), invoice))
	assert.True(t, CanMutateInvoiceStatus(adminClaims("x"), invoice))
	assert.False(t, CanMutateInvoiceStatus(studentClaims("student-1"), invoice))
	assert.False(t, CanMutateInvoiceStatus(coachClaims("coach-2"), invoice))
}

func TestCanUploadInvoiceProof(t *testing.T) {
	invoice := &models.Invoice{StudentID: "student-1", CoachID: "coach-1"}

	assert.True(t, CanUploadInvoiceProof(studentClaims("student-1"), invoice))
	assert.False(t, CanUploadInvoiceProof(studentClaims("student-2"), invoice))
	assert.False(t, CanUploadInvoiceProof(coachClaims("coach-1"), invoice))
	// Чек - только от студента, даже админ не загружает за него.
	assert.False(t, CanUploadInvoiceProof(adminClaims("admin-1"), invoice))
}

func TestCanCreateDeck(t *testing.T) {
	assert.True(t, CanCreateDeck(coachClaims("c")))
	assert.True(t, CanCreateDeck(adminClaims("a")))
	assert.False(t, CanCreateDeck(studentClaims("s")))
}
