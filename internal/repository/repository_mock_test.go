package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diary-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestSharedRepository_CreateWithMembers_UnknownInviteeRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSharedRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))
	mock.ExpectRollback()

	journal := &models.SharedJournal{Title: "trip", OwnerID: 1}
	err := repo.CreateWithMembers(context.Background(), journal, []string{"bob", "ghost"})

	var notFound *UsernameNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ghost", notFound.Username)
	require.Zero(t, journal.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSharedRepository_CreateWithMembers_InsertFailureRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSharedRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))
	mock.ExpectQuery(`INSERT INTO "shared_journals"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateWithMembers(context.Background(), &models.SharedJournal{Title: "trip", OwnerID: 1}, []string{"bob"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRepository_AppendEntry_WrongTurnRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRelayRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "relay_stories" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id", "is_public", "current_turn_user_id"}).
			AddRow(10, "tale", 1, false, 1))
	mock.ExpectRollback()

	entry, err := repo.AppendEntry(context.Background(), 10, 2, "not my turn")
	require.ErrorIs(t, err, ErrTurnMismatch)
	require.Nil(t, entry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRepository_AppendEntry_MissingStory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRelayRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "relay_stories" .*FOR UPDATE`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.AppendEntry(context.Background(), 99, 1, "hello")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_PropagatesErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByUsername(context.Background(), "alice")
	require.Error(t, err)
	require.False(t, IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := repo.FindByUsername(context.Background(), "alice")
	require.True(t, IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveUsernames_MatchesCaseInsensitiveRows(t *testing.T) {
	db, mock := setupMockDB(t)

	// A case-insensitive collation returns the stored spelling, not the requested one.
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(2, "bob").
			AddRow(3, "Carol"))

	users, err := resolveUsernames(db, []string{"Bob", "Carol"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, uint64(2), users[0].ID)
	require.Equal(t, uint64(3), users[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveInvitees_DropsOwnerAndRepeatedUsers(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(1, "alice").
			AddRow(2, "bob"))

	users, err := resolveInvitees(db, []string{"Bob", "ALICE", "bob"}, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, uint64(2), users[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRepository_CreateWithRoster_OnlyOwnerRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRelayRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))
	mock.ExpectRollback()

	story := &models.RelayStory{Title: "tale", OwnerID: 1}
	err := repo.CreateWithRoster(context.Background(), story, []string{"Alice"})
	require.ErrorIs(t, err, ErrNoInvitees)
	require.Zero(t, story.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
