package models

import "time"

type SharedJournal struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	OwnerID   uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Members []SharedMember `gorm:"foreignKey:JournalID" json:"members,omitempty"`
	Entries []SharedEntry  `gorm:"foreignKey:JournalID" json:"-"`
}
