package models

import "time"

type User struct {
	BaseModel
	Name         string      `gorm:"not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string      `json:"phone"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         UserRole    `gorm:"type:varchar(20);not null" json:"role"`
	AccessLevel  AccessLevel `gorm:"type:varchar(10);not null;default:'USER'" json:"access_level"`
	Status       UserStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`

	// Relations
	Decks []Deck `gorm:"foreignKey:CoachID" json:"-"`
}

// PasswordResetToken - одноразовый токен сброса пароля.
// На пользователя живет максимум один: новый запрос удаляет предыдущие.
type PasswordResetToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
