package repository

import (
	"context"
	"time"

	"github.com/yukikurage/diary-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRelayRepository is a GORM implementation of RelayRepository
type GormRelayRepository struct {
	db *gorm.DB
}

// NewRelayRepository creates a new RelayRepository
func NewRelayRepository(db *gorm.DB) RelayRepository {
	return &GormRelayRepository{db: db}
}

// CreateWithRoster writes the story, the roster (owner at turn 0, invitees in the
// given order) and hands the first turn to the owner, all in one transaction.
func (r *GormRelayRepository) CreateWithRoster(ctx context.Context, story *models.RelayStory, inviteeUsernames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invitees, err := resolveInvitees(tx, inviteeUsernames, story.OwnerID)
		if err != nil {
			return err
		}

		ownerID := story.OwnerID
		story.CurrentTurnUserID = &ownerID
		if err := tx.Create(story).Error; err != nil {
			return err
		}

		now := time.Now()
		roster := make([]models.RelayParticipant, 0, len(invitees)+1)
		roster = append(roster, models.RelayParticipant{
			StoryID:   story.ID,
			UserID:    ownerID,
			TurnOrder: 0,
			JoinedAt:  now,
		})
		for i, u := range invitees {
			roster = append(roster, models.RelayParticipant{
				StoryID:   story.ID,
				UserID:    u.ID,
				TurnOrder: i + 1,
				JoinedAt:  now,
			})
		}

		if err := tx.Create(&roster).Error; err != nil {
			return err
		}

		story.Participants = roster
		return nil
	})
}

// FindByID finds a relay story by ID
func (r *GormRelayRepository) FindByID(ctx context.Context, id uint64) (*models.RelayStory, error) {
	var story models.RelayStory
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// FindParticipant finds a specific roster entry
func (r *GormRelayRepository) FindParticipant(ctx context.Context, storyID, userID uint64) (*models.RelayParticipant, error) {
	var participant models.RelayParticipant
	if err := r.db.WithContext(ctx).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListRoster lists participants ordered by turn
func (r *GormRelayRepository) ListRoster(ctx context.Context, storyID uint64) ([]models.RelayParticipant, error) {
	var roster []models.RelayParticipant
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("story_id = ?", storyID).
		Order("turn_order ASC").
		Find(&roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

// AppendEntry runs the whole turn transition in one transaction:
// lock the story, verify the author holds the turn, re-read the roster,
// insert part max+1 and hand the turn to the next roster member.
// The turn update is conditional on the author still holding it, so a
// double-submitted write cannot advance the turn twice.
func (r *GormRelayRepository) AppendEntry(ctx context.Context, storyID, authorID uint64, content string) (*models.RelayEntry, error) {
	var entry *models.RelayEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var story models.RelayStory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&story, storyID).Error; err != nil {
			return err
		}
		if !story.IsTurnOf(authorID) {
			return ErrTurnMismatch
		}

		var roster []models.RelayParticipant
		if err := tx.Where("story_id = ?", storyID).Order("turn_order ASC").Find(&roster).Error; err != nil {
			return err
		}
		if len(roster) == 0 {
			return ErrEmptyRoster
		}
		next, ok := models.NextTurn(roster, authorID)
		if !ok {
			return ErrTurnMismatch
		}

		var lastPart int
		if err := tx.Model(&models.RelayEntry{}).
			Select("COALESCE(MAX(part_order), -1)").
			Where("story_id = ?", storyID).
			Row().Scan(&lastPart); err != nil {
			return err
		}

		entry = &models.RelayEntry{
			StoryID:   storyID,
			PartOrder: lastPart + 1,
			AuthorID:  authorID,
			Content:   content,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		result := tx.Model(&models.RelayStory{}).
			Where("id = ? AND current_turn_user_id = ?", storyID, authorID).
			Updates(map[string]interface{}{"current_turn_user_id": next})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTurnMismatch
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries lists a story's parts with authors, first part first
func (r *GormRelayRepository) ListEntries(ctx context.Context, storyID uint64) ([]models.RelayEntry, error) {
	var entries []models.RelayEntry
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("story_id = ?", storyID).
		Order("part_order ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListVisibleToUser lists stories the user takes part in plus public ones
func (r *GormRelayRepository) ListVisibleToUser(ctx context.Context, userID uint64) ([]models.RelayStory, error) {
	participating := r.db.Model(&models.RelayParticipant{}).
		Select("story_id").
		Where("user_id = ?", userID)

	var stories []models.RelayStory
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", participating).
		Or("is_public = ?", true).
		Order("created_at DESC, id DESC").
		Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}
