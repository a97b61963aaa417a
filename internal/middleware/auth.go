package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/constants"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/identity"
)

// RequireAuth checks if the user is authenticated via session and attaches the
// identity to the request context for the service layer.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
		if !ok || userID == 0 {
			apierrors.Unauthorized(c, "")
			return
		}
		username, _ := session.Get(constants.ContextKeyUsername).(string)

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUsername, username)
		c.Request = c.Request.WithContext(identity.NewContext(c.Request.Context(), identity.Identity{
			UserID:   userID,
			Username: username,
		}))
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// Session values round-trip through gob or JSON depending on the store.
func toUint64(v interface{}) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
