package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/services"
)

// RespondServiceError maps a service error to the API error response.
func RespondServiceError(c *gin.Context, err error) {
	var unknown *services.UnknownUserError

	switch {
	case errors.As(err, &unknown):
		apierrors.Unprocessable(c, apierrors.ErrCodeUnknownUser, unknown.Error(), gin.H{"username": unknown.Username})
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrTooFewMembers),
		errors.Is(err, services.ErrTooManyMembers),
		errors.Is(err, services.ErrTooFewParticipants):
		apierrors.Unprocessable(c, apierrors.ErrCodeInvalidMembership, err.Error(), nil)
	case errors.Is(err, services.ErrNotYourTurn):
		apierrors.Conflict(c, apierrors.ErrCodeNotYourTurn, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, apierrors.ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrNotAMember),
		errors.Is(err, services.ErrJournalNotFound):
		apierrors.NotFound(c, "Shared journal not found")
	case errors.Is(err, services.ErrStoryNotFound):
		apierrors.NotFound(c, "Relay story not found")
	case errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(RequestIDKey),
			"error", err)
		apierrors.InternalError(c, "")
	}
}
