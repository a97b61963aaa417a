package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/diary-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPersonalRepository is a GORM implementation of PersonalRepository
type GormPersonalRepository struct {
	db *gorm.DB
}

// NewPersonalRepository creates a new PersonalRepository
func NewPersonalRepository(db *gorm.DB) PersonalRepository {
	return &GormPersonalRepository{db: db}
}

// Upsert relies on the (user_id, entry_date) unique index so concurrent writers
// for the same day converge on a single row.
func (r *GormPersonalRepository) Upsert(ctx context.Context, entry *models.PersonalEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "tags", "updated_at"}),
		}).
		Create(entry).Error
}

// FindByDate finds a user's entry for a date
func (r *GormPersonalRepository) FindByDate(ctx context.Context, userID uint64, date string) (*models.PersonalEntry, error) {
	var entry models.PersonalEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Search lists a user's entries matching keyword in content or tags
func (r *GormPersonalRepository) Search(ctx context.Context, userID uint64, keyword string) ([]models.PersonalEntry, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if keyword != "" {
		pattern := "%" + escapeLike(keyword) + "%"
		query = query.Where(r.db.
			Where("content LIKE ? ESCAPE '"+likeEscape+"'", pattern).
			Or("tags LIKE ? ESCAPE '"+likeEscape+"'", pattern))
	}

	var entries []models.PersonalEntry
	if err := query.Order("entry_date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListDates lists the dates in [from, to) that have an entry
func (r *GormPersonalRepository) ListDates(ctx context.Context, userID uint64, from, to string) ([]string, error) {
	var dates []string
	if err := r.db.WithContext(ctx).
		Model(&models.PersonalEntry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, from, to).
		Order("entry_date ASC").
		Pluck("entry_date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

// MySQL string literals treat a backslash as an escape, so '!' is the LIKE escape character.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// escapeLike makes keyword match literally inside a LIKE pattern.
func escapeLike(keyword string) string {
	return likeReplacer.Replace(keyword)
}
