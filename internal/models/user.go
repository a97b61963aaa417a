package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	PasswordSalt string    `gorm:"type:varchar(64);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	PersonalEntries   []PersonalEntry    `gorm:"foreignKey:UserID" json:"-"`
	SharedMemberships []SharedMember     `gorm:"foreignKey:UserID" json:"-"`
	RelayRosters      []RelayParticipant `gorm:"foreignKey:UserID" json:"-"`
}
