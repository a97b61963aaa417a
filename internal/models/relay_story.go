package models

import "time"

type RelayStory struct {
	ID                uint64    `gorm:"primarykey" json:"id"`
	Title             string    `gorm:"type:varchar(255);not null" json:"title"`
	OwnerID           uint64    `gorm:"not null;index" json:"owner_id"`
	IsPublic          bool      `gorm:"not null" json:"is_public"`
	CurrentTurnUserID *uint64   `json:"current_turn_user_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	Participants []RelayParticipant `gorm:"foreignKey:StoryID" json:"participants,omitempty"`
	Entries      []RelayEntry       `gorm:"foreignKey:StoryID" json:"-"`
}

// IsTurnOf reports whether userID holds the current turn.
func (s RelayStory) IsTurnOf(userID uint64) bool {
	return s.CurrentTurnUserID != nil && *s.CurrentTurnUserID == userID
}
