package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/handlers"
	"github.com/yukikurage/diary-api/internal/middleware"
	"github.com/yukikurage/diary-api/internal/ratelimit"
	"github.com/yukikurage/diary-api/internal/repository"
	"github.com/yukikurage/diary-api/internal/services"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators the HTTP layer is built from.
type Deps struct {
	DB      *gorm.DB
	Store   sessions.Store
	Logger  *slog.Logger
	Limiter *ratelimit.KeyedRateLimiter
}

// New wires repositories, services and handlers into a gin engine.
func New(deps Deps) *gin.Engine {
	userRepo := repository.NewUserRepository(deps.DB)
	personalRepo := repository.NewPersonalRepository(deps.DB)
	sharedRepo := repository.NewSharedRepository(deps.DB)
	relayRepo := repository.NewRelayRepository(deps.DB)

	authService := services.NewAuthService(userRepo)
	personalService := services.NewPersonalService(personalRepo)
	sharedService := services.NewSharedService(sharedRepo, userRepo)
	relayService := services.NewRelayService(relayRepo, userRepo)
	guard := services.NewAccessGuard(sharedService, relayService)

	authHandler := handlers.NewAuthHandler(authService)
	personalHandler := handlers.NewPersonalHandler(personalService)
	sharedHandler := handlers.NewSharedHandler(sharedService, guard)
	relayHandler := handlers.NewRelayHandler(relayService, guard)

	r := gin.New()
	r.Use(gin.Recovery())
	if deps.Logger != nil {
		r.Use(middleware.RequestLogger(deps.Logger))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.Store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Diary API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	if deps.Limiter != nil {
		api.Use(middleware.RateLimit(deps.Limiter))
	}
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Personal diary routes (protected)
		diary := api.Group("/diary")
		diary.Use(middleware.RequireAuth())
		{
			diary.GET("/entries", personalHandler.SearchEntries)
			diary.PUT("/entries/:date", personalHandler.SaveEntry)
			diary.GET("/entries/:date", personalHandler.GetEntry)
			diary.GET("/calendar", personalHandler.Calendar)
		}

		// Shared journal routes (protected, members only on :id)
		shared := api.Group("/shared")
		shared.Use(middleware.RequireAuth())
		{
			shared.POST("", sharedHandler.CreateJournal)
			shared.GET("", sharedHandler.ListJournals)
			shared.GET("/:id", middleware.RequireJournalMember(guard), sharedHandler.GetJournal)
			shared.GET("/:id/entries", middleware.RequireJournalMember(guard), sharedHandler.ListEntries)
			shared.POST("/:id/entries", middleware.RequireJournalMember(guard), sharedHandler.AddEntry)
		}

		// Relay story routes (protected, turn holder only for writes)
		relay := api.Group("/relay")
		relay.Use(middleware.RequireAuth())
		{
			relay.POST("", relayHandler.CreateStory)
			relay.GET("", relayHandler.ListStories)
			relay.GET("/:id", middleware.RequireStoryAccess(guard), relayHandler.GetStory)
			relay.GET("/:id/next", middleware.RequireStoryAccess(guard), relayHandler.WhoIsNext)
			relay.GET("/:id/entries", middleware.RequireStoryAccess(guard), relayHandler.ListEntries)
			relay.POST("/:id/entries", middleware.RequireStoryAccess(guard), middleware.RequireStoryTurn(guard), relayHandler.AddEntry)
		}
	}

	return r
}
