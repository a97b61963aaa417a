package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/constants"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/services"
)

// RequireStoryAccess loads the relay story named by :id if the user may read it.
// Private stories are reported as missing to outsiders.
func RequireStoryAccess(guard *services.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		storyID, ok := parseStoryID(c)
		if !ok {
			return
		}

		story, err := guard.AuthorizeStoryRead(c.Request.Context(), storyID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}

		c.Set(constants.ContextKeyStory, *story)
		c.Next()
	}
}

// RequireStoryTurn rejects writes from anyone but the current turn holder
// before the handler runs. The write itself re-checks the turn.
func RequireStoryTurn(guard *services.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		storyID, ok := parseStoryID(c)
		if !ok {
			return
		}

		if _, err := guard.AuthorizeTurn(c.Request.Context(), storyID); err != nil {
			RespondServiceError(c, err)
			return
		}
		c.Next()
	}
}

// GetStory returns the story stored by RequireStoryAccess.
func GetStory(c *gin.Context) (models.RelayStory, bool) {
	v, exists := c.Get(constants.ContextKeyStory)
	if !exists {
		return models.RelayStory{}, false
	}
	story, ok := v.(models.RelayStory)
	return story, ok
}

func parseStoryID(c *gin.Context) (uint64, bool) {
	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid story ID")
		return 0, false
	}
	return storyID, true
}
