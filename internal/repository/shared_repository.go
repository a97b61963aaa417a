package repository

import (
	"context"
	"time"

	"github.com/yukikurage/diary-api/internal/database"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/utils"
	"gorm.io/gorm"
)

// GormSharedRepository is a GORM implementation of SharedRepository
type GormSharedRepository struct {
	db *gorm.DB
}

// NewSharedRepository creates a new SharedRepository
func NewSharedRepository(db *gorm.DB) SharedRepository {
	return &GormSharedRepository{db: db}
}

// CreateWithMembers resolves invitees, then writes the journal, the owner row and the
// member rows. Any failure rolls everything back, so no partial membership is visible.
func (r *GormSharedRepository) CreateWithMembers(ctx context.Context, journal *models.SharedJournal, inviteeUsernames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invitees, err := resolveInvitees(tx, inviteeUsernames, journal.OwnerID)
		if err != nil {
			return err
		}

		if err := tx.Create(journal).Error; err != nil {
			return err
		}

		now := time.Now()
		members := make([]models.SharedMember, 0, len(invitees)+1)
		members = append(members, models.SharedMember{
			JournalID: journal.ID,
			UserID:    journal.OwnerID,
			Role:      models.RoleOwner,
			JoinedAt:  now,
		})
		for _, u := range invitees {
			members = append(members, models.SharedMember{
				JournalID: journal.ID,
				UserID:    u.ID,
				Role:      models.RoleMember,
				JoinedAt:  now,
			})
		}

		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		journal.Members = members
		return nil
	})
}

// FindByID finds a shared journal by ID
func (r *GormSharedRepository) FindByID(ctx context.Context, id uint64) (*models.SharedJournal, error) {
	var journal models.SharedJournal
	if err := r.db.WithContext(ctx).First(&journal, id).Error; err != nil {
		return nil, err
	}
	return &journal, nil
}

// FindMember finds a specific journal member
func (r *GormSharedRepository) FindMember(ctx context.Context, journalID, userID uint64) (*models.SharedMember, error) {
	var member models.SharedMember
	if err := r.db.WithContext(ctx).
		Where("journal_id = ? AND user_id = ?", journalID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a journal, owner first then by join order
func (r *GormSharedRepository) ListMembers(ctx context.Context, journalID uint64) ([]models.SharedMember, error) {
	var members []models.SharedMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("journal_id = ?", journalID).
		Order("CASE WHEN role = 'owner' THEN 0 ELSE 1 END, joined_at ASC, user_id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists all journals a user belongs to, newest journal first
func (r *GormSharedRepository) ListMembershipsByUserID(ctx context.Context, userID uint64) ([]models.SharedMember, error) {
	var memberships []models.SharedMember
	if err := r.db.WithContext(ctx).
		Preload("Journal").
		Joins("JOIN shared_journals ON shared_journals.id = shared_members.journal_id").
		Where("shared_members.user_id = ?", userID).
		Order("shared_journals.created_at DESC, shared_journals.id DESC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountMembers counts members per journal
func (r *GormSharedRepository) CountMembers(ctx context.Context, journalIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(journalIDs))
	if len(journalIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		JournalID uint64
		Total     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SharedMember{}).
		Select("journal_id, COUNT(*) AS total").
		Where("journal_id IN ?", journalIDs).
		Group("journal_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.JournalID] = row.Total
	}
	return counts, nil
}

// AddEntry appends an entry to a journal
func (r *GormSharedRepository) AddEntry(ctx context.Context, entry *models.SharedEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListEntries lists a journal's entries with their authors, newest first
func (r *GormSharedRepository) ListEntries(ctx context.Context, journalID uint64, page utils.PaginationParams) ([]models.SharedEntry, error) {
	var entries []models.SharedEntry
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("journal_id = ?", journalID).
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
