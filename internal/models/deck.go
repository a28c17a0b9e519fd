package models

// Deck - коучинговая связка "один коуч - один студент".
type Deck struct {
	BaseModel
	Name    string `gorm:"not null" json:"name"`
	CoachID string `gorm:"type:uuid;not null;index" json:"coach_id"`

	// Relations
	Coach      *User       `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
	Membership *Membership `gorm:"foreignKey:DeckID" json:"membership,omitempty"`
	Documents  []Document  `gorm:"foreignKey:DeckID" json:"-"`
	Tickets    []Ticket    `gorm:"foreignKey:DeckID" json:"-"`
}

// Membership - связь дека и его единственного студента.
// Создается атомарно вместе с декой.
type Membership struct {
	BaseModel
	DeckID    string `gorm:"type:uuid;not null;uniqueIndex" json:"deck_id"`
	StudentID string `gorm:"type:uuid;not null;index" json:"student_id"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

type Document struct {
	BaseModel
	DeckID  string `gorm:"type:uuid;not null;index" json:"deck_id"`
	Title   string `gorm:"not null" json:"title"`
	URL     string `json:"url"`
	AddedBy string `gorm:"type:uuid;not null" json:"added_by"`
}
