package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// secondaryIndexes are read-path indexes not expressed in model tags.
var secondaryIndexes = []struct {
	table   string
	name    string
	columns string
}{
	// Listing a user's journals and stories
	{"shared_members", "idx_shared_members_user_id", "user_id"},
	{"relay_participants", "idx_relay_participants_user_id", "user_id"},

	// Timeline reads
	{"shared_entries", "idx_shared_entries_journal_created", "journal_id, created_at"},
	{"shared_journals", "idx_shared_journals_created_at", "created_at"},
	{"relay_stories", "idx_relay_stories_public_created", "is_public, created_at"},

	// Keyword search is scoped to a user and ordered by date
	{"personal_entries", "idx_personal_entries_user_id", "user_id"},
}

// AddIndexes creates the secondary indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
