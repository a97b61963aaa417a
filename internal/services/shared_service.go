package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/repository"
	"github.com/yukikurage/diary-api/internal/utils"
)

var (
	ErrJournalNotFound = errors.New("shared journal not found")
	ErrTooFewMembers   = fmt.Errorf("a shared journal needs at least %d invitee", constants.MinSharedInvitees)
	ErrTooManyMembers  = fmt.Errorf("a shared journal allows at most %d invitees", constants.MaxSharedInvitees)
)

// SharedService provides business logic for shared journals.
type SharedService struct {
	sharedRepo repository.SharedRepository
	userRepo   repository.UserRepository
}

// NewSharedService creates a new SharedService.
func NewSharedService(sharedRepo repository.SharedRepository, userRepo repository.UserRepository) *SharedService {
	return &SharedService{
		sharedRepo: sharedRepo,
		userRepo:   userRepo,
	}
}

// CreateSharedInput represents parameters to create a shared journal.
type CreateSharedInput struct {
	Title            string
	OwnerID          uint64
	InviteeUsernames []string
}

// SharedJournalSummary is a journal as seen from one member's list.
type SharedJournalSummary struct {
	Journal     models.SharedJournal
	Role        models.SharedRole
	MemberCount int64
}

// Create creates a journal with the owner and 1-4 invitees. Either every
// membership row is written or none is.
func (s *SharedService) Create(ctx context.Context, input CreateSharedInput) (*models.SharedJournal, error) {
	owner, err := s.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	invitees := normalizeInvitees(input.InviteeUsernames, owner.Username)
	if len(invitees) < constants.MinSharedInvitees {
		return nil, ErrTooFewMembers
	}
	if len(invitees) > constants.MaxSharedInvitees {
		return nil, ErrTooManyMembers
	}

	journal := &models.SharedJournal{
		Title:   titleOrDefault(input.Title, constants.DefaultSharedTitle),
		OwnerID: owner.ID,
	}

	if err := s.sharedRepo.CreateWithMembers(ctx, journal, invitees); err != nil {
		var notFound *repository.UsernameNotFoundError
		if errors.As(err, &notFound) {
			return nil, &UnknownUserError{Username: notFound.Username}
		}
		if errors.Is(err, repository.ErrNoInvitees) {
			return nil, ErrTooFewMembers
		}
		return nil, fmt.Errorf("failed to create shared journal: %w", err)
	}

	return journal, nil
}

// ListForUser returns the journals userID belongs to, most recently created first.
func (s *SharedService) ListForUser(ctx context.Context, userID uint64) ([]SharedJournalSummary, error) {
	memberships, err := s.sharedRepo.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared journals: %w", err)
	}

	ids := make([]uint64, len(memberships))
	for i, m := range memberships {
		ids[i] = m.JournalID
	}
	counts, err := s.sharedRepo.CountMembers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count journal members: %w", err)
	}

	summaries := make([]SharedJournalSummary, len(memberships))
	for i, m := range memberships {
		summaries[i] = SharedJournalSummary{
			Journal:     m.Journal,
			Role:        m.Role,
			MemberCount: counts[m.JournalID],
		}
	}
	return summaries, nil
}

// IsMember reports whether userID belongs to journalID. Unknown journals have no members.
func (s *SharedService) IsMember(ctx context.Context, journalID, userID uint64) (bool, error) {
	if _, err := s.sharedRepo.FindMember(ctx, journalID, userID); err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to verify membership: %w", err)
	}
	return true, nil
}

// Get returns a journal and its members.
func (s *SharedService) Get(ctx context.Context, journalID uint64) (*models.SharedJournal, []models.SharedMember, error) {
	journal, err := s.sharedRepo.FindByID(ctx, journalID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, ErrJournalNotFound
		}
		return nil, nil, fmt.Errorf("failed to find shared journal: %w", err)
	}

	members, err := s.Members(ctx, journalID)
	if err != nil {
		return nil, nil, err
	}
	return journal, members, nil
}

// Members returns the journal's members with their users, owner first.
func (s *SharedService) Members(ctx context.Context, journalID uint64) ([]models.SharedMember, error) {
	members, err := s.sharedRepo.ListMembers(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal members: %w", err)
	}
	return members, nil
}

// AddEntry appends an entry. Membership must already have been checked by the AccessGuard.
func (s *SharedService) AddEntry(ctx context.Context, journalID, authorID uint64, content string) (*models.SharedEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	entry := &models.SharedEntry{
		JournalID: journalID,
		AuthorID:  authorID,
		Content:   content,
	}
	if err := s.sharedRepo.AddEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add journal entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns every entry with its author, newest first.
func (s *SharedService) ListEntries(ctx context.Context, journalID uint64) ([]models.SharedEntry, error) {
	return s.ListEntriesPage(ctx, journalID, utils.PaginationParams{})
}

// ListEntriesPage is ListEntries restricted to one page.
func (s *SharedService) ListEntriesPage(ctx context.Context, journalID uint64, page utils.PaginationParams) ([]models.SharedEntry, error) {
	entries, err := s.sharedRepo.ListEntries(ctx, journalID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}
