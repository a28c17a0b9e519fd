package models

type Ticket struct {
	BaseModel
	DeckID     string       `gorm:"type:uuid;not null;index" json:"deck_id"`
	Title      string       `gorm:"not null" json:"title"`
	Body       string       `gorm:"not null" json:"body"`
	Status     TicketStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	AuthorID   string       `gorm:"type:uuid;not null;index" json:"author_id"`
	AssigneeID *string      `gorm:"type:uuid" json:"assignee_id,omitempty"`

	// Relations
	Deck     *Deck           `gorm:"foreignKey:DeckID" json:"deck,omitempty"`
	Author   *User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []TicketComment `gorm:"foreignKey:TicketID" json:"comments,omitempty"`
}

// TicketComment - append-only, упорядочены по времени создания.
type TicketComment struct {
	BaseModel
	TicketID string `gorm:"type:uuid;not null;index" json:"ticket_id"`
	AuthorID string `gorm:"type:uuid;not null" json:"author_id"`
	Body     string `gorm:"not null" json:"body"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
