package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrStoryNotFound       = errors.New("relay story not found")
	ErrTooFewParticipants  = fmt.Errorf("a relay story needs at least %d invitee", constants.MinRelayInvitees)
	ErrNotYourTurn         = errors.New("it is not your turn to write")
	ErrStoryTurnUnassigned = errors.New("relay story has no turn holder")
)

// RelayService provides business logic for turn-based relay stories.
type RelayService struct {
	relayRepo repository.RelayRepository
	userRepo  repository.UserRepository
}

// NewRelayService creates a new RelayService.
func NewRelayService(relayRepo repository.RelayRepository, userRepo repository.UserRepository) *RelayService {
	return &RelayService{
		relayRepo: relayRepo,
		userRepo:  userRepo,
	}
}

// CreateRelayInput represents parameters to create a relay story.
type CreateRelayInput struct {
	Title            string
	OwnerID          uint64
	InviteeUsernames []string
	IsPublic         bool
}

// RelayStorySummary is a story as seen from one user's list.
type RelayStorySummary struct {
	Story    models.RelayStory
	IsMyTurn bool
}

// Create creates a story whose roster is the owner followed by the invitees in
// the given order. The owner writes first.
func (s *RelayService) Create(ctx context.Context, input CreateRelayInput) (*models.RelayStory, error) {
	owner, err := s.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	invitees := normalizeInvitees(input.InviteeUsernames, owner.Username)
	if len(invitees) < constants.MinRelayInvitees {
		return nil, ErrTooFewParticipants
	}

	story := &models.RelayStory{
		Title:    titleOrDefault(input.Title, constants.DefaultRelayTitle),
		OwnerID:  owner.ID,
		IsPublic: input.IsPublic,
	}

	if err := s.relayRepo.CreateWithRoster(ctx, story, invitees); err != nil {
		var notFound *repository.UsernameNotFoundError
		if errors.As(err, &notFound) {
			return nil, &UnknownUserError{Username: notFound.Username}
		}
		if errors.Is(err, repository.ErrNoInvitees) {
			return nil, ErrTooFewParticipants
		}
		return nil, fmt.Errorf("failed to create relay story: %w", err)
	}

	return story, nil
}

// Get returns a story and its roster in turn order.
func (s *RelayService) Get(ctx context.Context, storyID uint64) (*models.RelayStory, []models.RelayParticipant, error) {
	story, err := s.findStory(ctx, storyID)
	if err != nil {
		return nil, nil, err
	}

	roster, err := s.Roster(ctx, storyID)
	if err != nil {
		return nil, nil, err
	}
	return story, roster, nil
}

// Roster returns the participants in turn order.
func (s *RelayService) Roster(ctx context.Context, storyID uint64) ([]models.RelayParticipant, error) {
	roster, err := s.relayRepo.ListRoster(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return roster, nil
}

// WhoIsNext returns the user allowed to write the next part.
func (s *RelayService) WhoIsNext(ctx context.Context, storyID uint64) (uint64, error) {
	story, err := s.findStory(ctx, storyID)
	if err != nil {
		return 0, err
	}
	if story.CurrentTurnUserID == nil {
		return 0, ErrStoryTurnUnassigned
	}
	return *story.CurrentTurnUserID, nil
}

// IsParticipant reports whether userID is on the story's roster.
func (s *RelayService) IsParticipant(ctx context.Context, storyID, userID uint64) (bool, error) {
	if _, err := s.relayRepo.FindParticipant(ctx, storyID, userID); err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to verify participant: %w", err)
	}
	return true, nil
}

// AddEntry writes the next part if authorID holds the turn, then passes the
// turn on. Rejected writes leave both the entries and the turn untouched.
func (s *RelayService) AddEntry(ctx context.Context, storyID, authorID uint64, content string) (*models.RelayEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	entry, err := s.relayRepo.AppendEntry(ctx, storyID, authorID, content)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrStoryNotFound
		case errors.Is(err, repository.ErrTurnMismatch):
			return nil, ErrNotYourTurn
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrConflict
		default:
			return nil, fmt.Errorf("failed to add relay entry: %w", err)
		}
	}
	return entry, nil
}

// ListEntries returns the parts in reading order (part_order ascending).
func (s *RelayService) ListEntries(ctx context.Context, storyID uint64) ([]models.RelayEntry, error) {
	entries, err := s.relayRepo.ListEntries(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relay entries: %w", err)
	}
	return entries, nil
}

// ListForUser returns the stories userID takes part in plus public ones, newest first.
func (s *RelayService) ListForUser(ctx context.Context, userID uint64) ([]RelayStorySummary, error) {
	stories, err := s.relayRepo.ListVisibleToUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relay stories: %w", err)
	}

	summaries := make([]RelayStorySummary, len(stories))
	for i, story := range stories {
		summaries[i] = RelayStorySummary{
			Story:    story,
			IsMyTurn: story.IsTurnOf(userID),
		}
	}
	return summaries, nil
}

func (s *RelayService) findStory(ctx context.Context, storyID uint64) (*models.RelayStory, error) {
	story, err := s.relayRepo.FindByID(ctx, storyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to find relay story: %w", err)
	}
	return story, nil
}
