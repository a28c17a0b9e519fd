package dto

// CreateInvoiceRequest - студент выставляет себе счет по тарифу коуча.
// Канал опционален: по умолчанию берется первый включенный у коуча
// (банк предпочтительнее кошелька).
type CreateInvoiceRequest struct {
	CoachID string `json:"coach_id" validate:"required,uuid4"`
	PlanID  string `json:"plan_id" validate:"required,uuid4"`
	Channel string `json:"channel" validate:"omitempty,oneof=BANK E_WALLET"`
}

// UpdateInvoiceStatusRequest - смена статуса инвойса коучем или админом
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
