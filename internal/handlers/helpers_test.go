package handlers

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/database"
	"github.com/yukikurage/diary-api/internal/identity"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/repository"
	"github.com/yukikurage/diary-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerTestEnv struct {
	db       *gorm.DB
	auth     *services.AuthService
	personal *services.PersonalService
	shared   *services.SharedService
	relay    *services.RelayService
	guard    *services.AccessGuard
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	shared := services.NewSharedService(repository.NewSharedRepository(db), userRepo)
	relay := services.NewRelayService(repository.NewRelayRepository(db), userRepo)

	return handlerTestEnv{
		db:       db,
		auth:     services.NewAuthService(userRepo),
		personal: services.NewPersonalService(repository.NewPersonalRepository(db)),
		shared:   shared,
		relay:    relay,
		guard:    services.NewAccessGuard(shared, relay),
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

// testContext builds a context for user as RequireAuth would leave it.
func testContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUsername, user.Username)
		req = req.WithContext(identity.NewContext(context.Background(), identity.Identity{
			UserID:   user.ID,
			Username: user.Username,
		}))
	}
	c.Request = req

	return c, w
}
