package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/repository"
)

var (
	ErrEntryNotFound = errors.New("diary entry not found")
	ErrInvalidDate   = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrInvalidInput)
	ErrInvalidMonth  = fmt.Errorf("%w: month must be formatted as YYYY-MM", ErrInvalidInput)
	ErrEmptyContent  = fmt.Errorf("%w: content cannot be empty", ErrInvalidInput)
)

// PersonalService manages one diary page per user per calendar date.
type PersonalService struct {
	personalRepo repository.PersonalRepository
}

// NewPersonalService creates a new PersonalService.
func NewPersonalService(personalRepo repository.PersonalRepository) *PersonalService {
	return &PersonalService{
		personalRepo: personalRepo,
	}
}

// UpsertEntry creates the page for (userID, date) or replaces its content and tags.
func (s *PersonalService) UpsertEntry(ctx context.Context, userID uint64, date, content string, tags []string) (*models.PersonalEntry, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	entry := &models.PersonalEntry{
		UserID:    userID,
		EntryDate: day,
		Content:   content,
		Tags:      joinTags(tags),
	}
	if err := s.personalRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save diary entry: %w", err)
	}

	// Re-read so callers see the stored created_at on the replace path.
	saved, err := s.personalRepo.FindByDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved diary entry: %w", err)
	}
	return saved, nil
}

// LoadEntry returns the page for (userID, date), or ErrEntryNotFound.
func (s *PersonalService) LoadEntry(ctx context.Context, userID uint64, date string) (*models.PersonalEntry, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	entry, err := s.personalRepo.FindByDate(ctx, userID, day)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to find diary entry: %w", err)
	}
	return entry, nil
}

// Search returns the user's pages whose content or tags contain keyword,
// newest date first. An empty keyword returns every page.
func (s *PersonalService) Search(ctx context.Context, userID uint64, keyword string) ([]models.PersonalEntry, error) {
	entries, err := s.personalRepo.Search(ctx, userID, strings.TrimSpace(keyword))
	if err != nil {
		return nil, fmt.Errorf("failed to search diary: %w", err)
	}
	return entries, nil
}

// ListDates returns the dates within month (YYYY-MM) that have a page.
func (s *PersonalService) ListDates(ctx context.Context, userID uint64, month string) ([]string, error) {
	start, err := time.Parse(constants.MonthLayout, strings.TrimSpace(month))
	if err != nil {
		return nil, ErrInvalidMonth
	}
	end := start.AddDate(0, 1, 0)

	dates, err := s.personalRepo.ListDates(ctx, userID, start.Format(constants.DateLayout), end.Format(constants.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list diary dates: %w", err)
	}
	return dates, nil
}

func parseDate(date string) (string, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(constants.DateLayout), nil
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		// Commas are the storage separator.
		for _, part := range strings.Split(tag, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaned = append(cleaned, part)
			}
		}
	}
	return strings.Join(cleaned, ",")
}
