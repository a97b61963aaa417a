package dto

import (
	"time"

	"github.com/yukikurage/diary-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
}

// AuthorDTO is the short form of a user attached to entries and rosters
type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ToUserDTO converts a user model to its API form
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToAuthorDTO converts a user model to its short API form
func ToAuthorDTO(user models.User) AuthorDTO {
	return AuthorDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// PersonalEntryDTO represents one diary page
type PersonalEntryDTO struct {
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPersonalEntryDTO converts a diary page
func ToPersonalEntryDTO(entry models.PersonalEntry) PersonalEntryDTO {
	return PersonalEntryDTO{
		Date:      entry.EntryDate,
		Content:   entry.Content,
		Tags:      entry.TagList(),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// ToPersonalEntryDTOs converts a list of diary pages
func ToPersonalEntryDTOs(entries []models.PersonalEntry) []PersonalEntryDTO {
	out := make([]PersonalEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = ToPersonalEntryDTO(e)
	}
	return out
}
