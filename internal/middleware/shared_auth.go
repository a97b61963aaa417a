package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/constants"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/services"
)

// RequireJournalMember checks that the user is a member of the shared journal
// named by the :id parameter. Non-members get the same 404 as a missing journal.
func RequireJournalMember(guard *services.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		journalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid journal ID")
			return
		}

		if _, err := guard.AuthorizeJournal(c.Request.Context(), journalID); err != nil {
			RespondServiceError(c, err)
			return
		}

		c.Set(constants.ContextKeyJournal, journalID)
		c.Next()
	}
}

// GetJournalID returns the journal ID stored by RequireJournalMember.
func GetJournalID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyJournal)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
