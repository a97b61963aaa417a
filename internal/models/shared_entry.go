package models

import "time"

// SharedEntry is append-only; there is no update or delete path.
type SharedEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	JournalID uint64    `gorm:"not null;index" json:"journal_id"`
	AuthorID  uint64    `gorm:"not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
