package dto

// CreatePlanRequest - тариф коуча. Amount в минимальных единицах валюты.
type CreatePlanRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Type        string `json:"type" validate:"omitempty,oneof=ONE_TIME SUBSCRIPTION"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,currency"`
}

// UpdatePlanRequest - частичное обновление тарифа
type UpdatePlanRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Amount      *int64  `json:"amount" validate:"omitempty,gt=0"`
	Active      *bool   `json:"active"`
}

// UpdatePaymentsConfigRequest - флаги каналов и booking-ссылка коуча
type UpdatePaymentsConfigRequest struct {
	EnableBank    *bool   `json:"enable_bank"`
	EnableEwallet *bool   `json:"enable_ewallet"`
	BookingURL    *string `json:"booking_url" validate:"omitempty,url"`
}

// CreateBankAccountRequest - банковские реквизиты коуча
type CreateBankAccountRequest struct {
	BankName      string `json:"bank_name" validate:"required,min=1,max=100"`
	AccountName   string `json:"account_name" validate:"required,min=1,max=100"`
	AccountNumber string `json:"account_number" validate:"required,min=1,max=50"`
}

// CreateEwalletRequest - электронный кошелек коуча
type CreateEwalletRequest struct {
	Provider    string `json:"provider" validate:"required,min=1,max=50"`
	AccountName string `json:"account_name" validate:"required,min=1,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,min=1,max=30"`
}
