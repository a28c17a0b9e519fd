package models

import "gorm.io/datatypes"

// Notification - запись для колокольчика. Письмо уходит отдельно,
// fire-and-forget; ошибки доставки не влияют на вызвавшую мутацию.
type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"`
	Title   string         `gorm:"not null" json:"title"`
	Message string         `gorm:"not null" json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead  bool           `gorm:"not null;default:false" json:"is_read"`
}
