package models

import "time"

type SharedRole string

const (
	RoleOwner  SharedRole = "owner"
	RoleMember SharedRole = "member"
)

type SharedMember struct {
	JournalID uint64     `gorm:"primarykey" json:"journal_id"`
	UserID    uint64     `gorm:"primarykey" json:"user_id"`
	Role      SharedRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time  `json:"joined_at"`

	// Relations
	Journal SharedJournal `gorm:"foreignKey:JournalID" json:"journal,omitempty"`
	User    User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
