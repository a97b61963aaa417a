package dto

import (
	"time"

	"github.com/yukikurage/diary-api/internal/models"
)

// RelayStoryDTO represents a relay story in API responses
type RelayStoryDTO struct {
	ID                uint64    `json:"id"`
	Title             string    `json:"title"`
	OwnerID           uint64    `json:"owner_id"`
	IsPublic          bool      `json:"is_public"`
	CurrentTurnUserID *uint64   `json:"current_turn_user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// RelayStoryListItemDTO represents a story with whether the caller writes next
type RelayStoryListItemDTO struct {
	RelayStoryDTO
	IsMyTurn bool `json:"is_my_turn"`
}

// RelayParticipantDTO represents one roster slot
type RelayParticipantDTO struct {
	User      AuthorDTO `json:"user"`
	TurnOrder int       `json:"turn_order"`
}

// RelayStoryDetailDTO represents a story with its roster
type RelayStoryDetailDTO struct {
	RelayStoryDTO
	Roster []RelayParticipantDTO `json:"roster"`
}

// RelayEntryDTO represents one part of a story
type RelayEntryDTO struct {
	ID        uint64    `json:"id"`
	PartOrder int       `json:"part_order"`
	Content   string    `json:"content"`
	Author    AuthorDTO `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// ToRelayStoryDTO converts a story
func ToRelayStoryDTO(story models.RelayStory) RelayStoryDTO {
	return RelayStoryDTO{
		ID:                story.ID,
		Title:             story.Title,
		OwnerID:           story.OwnerID,
		IsPublic:          story.IsPublic,
		CurrentTurnUserID: story.CurrentTurnUserID,
		CreatedAt:         story.CreatedAt,
	}
}

// ToRelayStoryDetailDTO converts a story and its roster; User must be preloaded
func ToRelayStoryDetailDTO(story models.RelayStory, roster []models.RelayParticipant) RelayStoryDetailDTO {
	slots := make([]RelayParticipantDTO, len(roster))
	for i, p := range roster {
		slots[i] = RelayParticipantDTO{
			User:      ToAuthorDTO(p.User),
			TurnOrder: p.TurnOrder,
		}
	}

	return RelayStoryDetailDTO{
		RelayStoryDTO: ToRelayStoryDTO(story),
		Roster:        slots,
	}
}

// ToRelayEntryDTO converts one part; Author must be preloaded
func ToRelayEntryDTO(entry models.RelayEntry) RelayEntryDTO {
	return RelayEntryDTO{
		ID:        entry.ID,
		PartOrder: entry.PartOrder,
		Content:   entry.Content,
		Author:    ToAuthorDTO(entry.Author),
		CreatedAt: entry.CreatedAt,
	}
}

// ToRelayEntryDTOs converts a list of parts
func ToRelayEntryDTOs(entries []models.RelayEntry) []RelayEntryDTO {
	out := make([]RelayEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = ToRelayEntryDTO(e)
	}
	return out
}
