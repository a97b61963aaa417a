package models

import "time"

// RelayEntry is one part of a relay story. PartOrder is 0-based and gapless per story.
type RelayEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	StoryID   uint64    `gorm:"not null;uniqueIndex:idx_relay_entries_story_part,priority:1" json:"story_id"`
	PartOrder int       `gorm:"not null;uniqueIndex:idx_relay_entries_story_part,priority:2" json:"part_order"`
	AuthorID  uint64    `gorm:"not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
