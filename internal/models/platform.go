package models

import "gorm.io/datatypes"

// Ключи глобальных синглтон-строк. Каждая читается как lookup-or-default
// и пишется upsert-ом, без кэша в памяти.
const (
	AdminConfigKey = "platform"
	PlanPricingKey = "platform"
)

// AdminConfig - платформенная конфигурация, меняется только супер-админом.
type AdminConfig struct {
	BaseModel
	Key                string `gorm:"not null;uniqueIndex" json:"key"`
	CheckoutWebhookURL string `json:"checkout_webhook_url"`
	SupportEmail       string `json:"support_email"`
}

// PlanPricing - цены платформенных тарифов Starter/Pro.
type PlanPricing struct {
	BaseModel
	Key            string         `gorm:"not null;uniqueIndex" json:"key"`
	StarterAmount  int64          `gorm:"not null;default:0" json:"starter_amount"`
	ProAmount      int64          `gorm:"not null;default:0" json:"pro_amount"`
	Currency       string         `gorm:"type:varchar(3);not null;default:'PHP'" json:"currency"`
	StarterFeatures datatypes.JSON `gorm:"type:jsonb" json:"starter_features"`
	ProFeatures     datatypes.JSON `gorm:"type:jsonb" json:"pro_features"`
}
