package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/utils"
)

var (
	// ErrTurnMismatch is returned when a relay write is attempted by someone other than the current turn holder.
	ErrTurnMismatch = errors.New("relay repository: author does not hold the turn")
	// ErrEmptyRoster is returned when a story has no participants to rotate through.
	ErrEmptyRoster = errors.New("relay repository: story roster is empty")
	// ErrNoInvitees is returned when every invitee resolves to the owner or to an earlier invitee.
	ErrNoInvitees = errors.New("repository: no invitees besides the owner")
)

// UsernameNotFoundError is returned when an invitee username does not resolve to a user.
type UsernameNotFoundError struct {
	Username string
}

func (e *UsernameNotFoundError) Error() string {
	return fmt.Sprintf("user %q not found", e.Username)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// PersonalRepository defines the interface for personal diary data access
type PersonalRepository interface {
	// Upsert inserts the entry or replaces content and tags of the existing (user, date) row
	Upsert(ctx context.Context, entry *models.PersonalEntry) error

	// FindByDate finds a user's entry for a date
	FindByDate(ctx context.Context, userID uint64, date string) (*models.PersonalEntry, error)

	// Search lists a user's entries whose content or tags contain keyword, newest date first
	Search(ctx context.Context, userID uint64, keyword string) ([]models.PersonalEntry, error)

	// ListDates lists the dates in [from, to) that have an entry, ascending
	ListDates(ctx context.Context, userID uint64, from, to string) ([]string, error)
}

// SharedRepository defines the interface for shared diary data access
type SharedRepository interface {
	// CreateWithMembers resolves invitees and creates the journal with its full membership in one transaction
	CreateWithMembers(ctx context.Context, journal *models.SharedJournal, inviteeUsernames []string) error

	// FindByID finds a shared journal by ID
	FindByID(ctx context.Context, id uint64) (*models.SharedJournal, error)

	// FindMember finds a specific journal member
	FindMember(ctx context.Context, journalID, userID uint64) (*models.SharedMember, error)

	// ListMembers lists all members of a journal, owner first
	ListMembers(ctx context.Context, journalID uint64) ([]models.SharedMember, error)

	// ListMembershipsByUserID lists the user's memberships, most recently created journal first
	ListMembershipsByUserID(ctx context.Context, userID uint64) ([]models.SharedMember, error)

	// CountMembers counts members per journal
	CountMembers(ctx context.Context, journalIDs []uint64) (map[uint64]int64, error)

	// AddEntry appends an entry to a journal
	AddEntry(ctx context.Context, entry *models.SharedEntry) error

	// ListEntries lists a journal's entries, newest first
	ListEntries(ctx context.Context, journalID uint64, page utils.PaginationParams) ([]models.SharedEntry, error)
}

// RelayRepository defines the interface for relay story data access
type RelayRepository interface {
	// CreateWithRoster resolves invitees and creates the story, its roster and initial turn in one transaction
	CreateWithRoster(ctx context.Context, story *models.RelayStory, inviteeUsernames []string) error

	// FindByID finds a relay story by ID
	FindByID(ctx context.Context, id uint64) (*models.RelayStory, error)

	// FindParticipant finds a specific roster entry
	FindParticipant(ctx context.Context, storyID, userID uint64) (*models.RelayParticipant, error)

	// ListRoster lists participants ordered by turn
	ListRoster(ctx context.Context, storyID uint64) ([]models.RelayParticipant, error)

	// AppendEntry checks the turn, writes the next part and advances the turn atomically
	AppendEntry(ctx context.Context, storyID, authorID uint64, content string) (*models.RelayEntry, error)

	// ListEntries lists a story's parts in reading order
	ListEntries(ctx context.Context, storyID uint64) ([]models.RelayEntry, error)

	// ListVisibleToUser lists stories the user takes part in plus public ones, newest first
	ListVisibleToUser(ctx context.Context, userID uint64) ([]models.RelayStory, error)
}
