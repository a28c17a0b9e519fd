package models

// PaymentPlan - тариф коуча. Сумма хранится в целых единицах валюты.
type PaymentPlan struct {
	BaseModel
	CoachID     string   `gorm:"type:uuid;not null;index" json:"coach_id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	Type        PlanType `gorm:"type:varchar(20);not null;default:'ONE_TIME'" json:"type"`
	Amount      int64    `gorm:"not null" json:"amount"`
	Currency    string   `gorm:"type:varchar(3);not null;default:'PHP'" json:"currency"`
	Active      bool     `gorm:"not null;default:true" json:"active"`
}

// CoachPaymentsConfig - синглтон на коуча, создается при первом обращении.
type CoachPaymentsConfig struct {
	BaseModel
	CoachID       string `gorm:"type:uuid;not null;uniqueIndex" json:"coach_id"`
	EnableBank    bool   `gorm:"not null;default:false" json:"enable_bank"`
	EnableEwallet bool   `gorm:"not null;default:false" json:"enable_ewallet"`
	BookingURL    string `json:"booking_url"`
}

type CoachBankAccount struct {
	BaseModel
	CoachID       string `gorm:"type:uuid;not null;index" json:"coach_id"`
	BankName      string `gorm:"not null" json:"bank_name"`
	AccountName   string `gorm:"not null" json:"account_name"`
	AccountNumber string `gorm:"not null" json:"account_number"`
}

type CoachEwallet struct {
	BaseModel
	CoachID     string `gorm:"type:uuid;not null;index" json:"coach_id"`
	Provider    string `gorm:"not null" json:"provider"`
	AccountName string `gorm:"not null" json:"account_name"`
	PhoneNumber string `gorm:"not null" json:"phone_number"`
}

// Invoice - счет студента коучу. Amount/Currency копируются из плана
// в момент создания: последующие правки плана инвойс не трогают.
type Invoice struct {
	BaseModel
	StudentID string         `gorm:"type:uuid;not null;index" json:"student_id"`
	CoachID   string         `gorm:"type:uuid;not null;index" json:"coach_id"`
	PlanID    *string        `gorm:"type:uuid" json:"plan_id,omitempty"`
	Amount    int64          `gorm:"not null" json:"amount"`
	Currency  string         `gorm:"type:varchar(3);not null" json:"currency"`
	Channel   PaymentChannel `gorm:"type:varchar(10);not null" json:"channel"`
	Status    InvoiceStatus  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ProofURL  string         `json:"proof_url"`

	// Relations
	Student *User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Coach   *User        `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
	Plan    *PaymentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
