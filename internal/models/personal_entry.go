package models

import (
	"strings"
	"time"
)

// PersonalEntry is a user's diary page for one calendar date.
// EntryDate is stored as YYYY-MM-DD so lexical order equals date order.
type PersonalEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_personal_entries_user_date,priority:1" json:"user_id"`
	EntryDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_personal_entries_user_date,priority:2" json:"entry_date"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Tags      string    `gorm:"type:text" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagList splits the stored comma separated tags.
func (e PersonalEntry) TagList() []string {
	if e.Tags == "" {
		return []string{}
	}
	parts := strings.Split(e.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
