package dto

import (
	"time"

	"github.com/yukikurage/diary-api/internal/models"
)

// SharedJournalDTO represents a shared journal in API responses
type SharedJournalDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uint64    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SharedJournalListItemDTO represents a journal with the caller's role
type SharedJournalListItemDTO struct {
	SharedJournalDTO
	Role        models.SharedRole `json:"role"`
	MemberCount int64             `json:"member_count"`
}

// SharedMemberDTO represents a member of a shared journal
type SharedMemberDTO struct {
	User     AuthorDTO         `json:"user"`
	Role     models.SharedRole `json:"role"`
	JoinedAt time.Time         `json:"joined_at"`
}

// SharedJournalDetailDTO represents a journal with its members
type SharedJournalDetailDTO struct {
	SharedJournalDTO
	Members []SharedMemberDTO `json:"members"`
}

// SharedEntryDTO represents one shared journal entry
type SharedEntryDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	Author    AuthorDTO `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSharedJournalDTO converts a journal
func ToSharedJournalDTO(journal models.SharedJournal) SharedJournalDTO {
	return SharedJournalDTO{
		ID:        journal.ID,
		Title:     journal.Title,
		OwnerID:   journal.OwnerID,
		CreatedAt: journal.CreatedAt,
	}
}

// ToSharedJournalDetailDTO converts a journal and its members
func ToSharedJournalDetailDTO(journal models.SharedJournal, members []models.SharedMember) SharedJournalDetailDTO {
	memberDTOs := make([]SharedMemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = SharedMemberDTO{
			User:     ToAuthorDTO(m.User),
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}

	return SharedJournalDetailDTO{
		SharedJournalDTO: ToSharedJournalDTO(journal),
		Members:          memberDTOs,
	}
}

// ToSharedEntryDTO converts an entry; Author must be preloaded
func ToSharedEntryDTO(entry models.SharedEntry) SharedEntryDTO {
	return SharedEntryDTO{
		ID:        entry.ID,
		Content:   entry.Content,
		Author:    ToAuthorDTO(entry.Author),
		CreatedAt: entry.CreatedAt,
	}
}

// ToSharedEntryDTOs converts a list of entries
func ToSharedEntryDTOs(entries []models.SharedEntry) []SharedEntryDTO {
	out := make([]SharedEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = ToSharedEntryDTO(e)
	}
	return out
}
