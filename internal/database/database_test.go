package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diary-api/internal/config"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	for _, idx := range secondaryIndexes {
		require.True(t, db.Migrator().HasIndex(idx.table, idx.name), idx.name)
	}
	require.True(t, db.Migrator().HasIndex(&models.PersonalEntry{}, "idx_personal_entries_user_date"))
	require.True(t, db.Migrator().HasIndex(&models.RelayEntry{}, "idx_relay_entries_story_part"))
}

func TestMigrate_TagsColumnIsUnbounded(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	columns, err := db.Migrator().ColumnTypes(&models.PersonalEntry{})
	require.NoError(t, err)

	for _, col := range columns {
		if col.Name() == "tags" {
			require.True(t, strings.EqualFold("text", col.DatabaseTypeName()), col.DatabaseTypeName())
			return
		}
	}
	t.Fatal("tags column not found")
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBPath: ":memory:"})
		require.NoError(t, err)
		require.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestPaginate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.User{
			Username:     string(rune('a'+i)) + "user",
			PasswordHash: "h",
			PasswordSalt: "s",
		}).Error)
	}

	var all []models.User
	require.NoError(t, db.Scopes(Paginate(utils.PaginationParams{})).Find(&all).Error)
	require.Len(t, all, 5)

	var page []models.User
	require.NoError(t, db.Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).Order("id").Find(&page).Error)
	require.Len(t, page, 2)
	require.Equal(t, "cuser", page[0].Username)
}
