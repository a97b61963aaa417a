package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diary-api/internal/database"
	"github.com/yukikurage/diary-api/internal/identity"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db       *gorm.DB
	auth     *AuthService
	personal *PersonalService
	shared   *SharedService
	relay    *RelayService
	guard    *AccessGuard
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	shared := NewSharedService(repository.NewSharedRepository(db), userRepo)
	relay := NewRelayService(repository.NewRelayRepository(db), userRepo)

	return serviceTestEnv{
		db:       db,
		auth:     NewAuthService(userRepo),
		personal: NewPersonalService(repository.NewPersonalRepository(db)),
		shared:   shared,
		relay:    relay,
		guard:    NewAccessGuard(shared, relay),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "hashed",
		PasswordSalt: "00",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func actingAs(user *models.User) context.Context {
	return identity.NewContext(context.Background(), identity.Identity{
		UserID:   user.ID,
		Username: user.Username,
	})
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
