package models

type UserRole string
type AccessLevel string
type UserStatus string
type TicketStatus string
type InvoiceStatus string
type PaymentChannel string
type PlanType string

const (
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
	UserRoleCoach      UserRole = "COACH"
	UserRoleStudent    UserRole = "STUDENT"

	AccessLevelAdmin AccessLevel = "ADMIN"
	AccessLevelUser  AccessLevel = "USER"

	UserStatusPending  UserStatus = "PENDING"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"

	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"

	InvoiceStatusPending     InvoiceStatus = "PENDING"
	InvoiceStatusSubmitted   InvoiceStatus = "SUBMITTED"
	InvoiceStatusUnderReview InvoiceStatus = "UNDER_REVIEW"
	InvoiceStatusPaid        InvoiceStatus = "PAID"
	InvoiceStatusRejected    InvoiceStatus = "REJECTED"
	InvoiceStatusCanceled    InvoiceStatus = "CANCELED"

	ChannelBank    PaymentChannel = "BANK"
	ChannelEwallet PaymentChannel = "E_WALLET"

	PlanTypeOneTime      PlanType = "ONE_TIME"
	PlanTypeSubscription PlanType = "SUBSCRIPTION"
)

// ValidTicketStatus проверяет, входит ли значение в закрытый набор статусов тикета.
// Порядок переходов не проверяется: воркфлоу плоский, любой не-студент
// может выставить любой из четырех статусов.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidInvoiceStatus проверяет значение статуса инвойса.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusSubmitted, InvoiceStatusUnderReview,
		InvoiceStatusPaid, InvoiceStatusRejected, InvoiceStatusCanceled:
		return true
	}
	return false
}

// ValidChannel проверяет значение платежного канала.
func ValidChannel(ch PaymentChannel) bool {
	return ch == ChannelBank || ch == ChannelEwallet
}
