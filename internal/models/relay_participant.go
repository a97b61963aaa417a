package models

import "time"

type RelayParticipant struct {
	StoryID   uint64    `gorm:"primarykey;uniqueIndex:idx_relay_participants_story_turn,priority:1" json:"story_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	TurnOrder int       `gorm:"not null;uniqueIndex:idx_relay_participants_story_turn,priority:2" json:"turn_order"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// NextTurn returns the roster member that follows current, wrapping around.
// The roster must be sorted by TurnOrder. ok is false when current is not on it.
func NextTurn(roster []RelayParticipant, current uint64) (next uint64, ok bool) {
	for i, p := range roster {
		if p.UserID == current {
			return roster[(i+1)%len(roster)].UserID, true
		}
	}
	return 0, false
}
