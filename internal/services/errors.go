package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers too-short usernames/passwords and blank required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownUser is matched by every *UnknownUserError.
	ErrUnknownUser     = errors.New("unknown user")
	ErrNotAMember      = errors.New("user is not a member of this journal")
	ErrUnauthenticated = errors.New("authentication required")
	// ErrConflict reports a concurrent write that lost a uniqueness race; the caller may resubmit.
	ErrConflict = errors.New("concurrent update conflict")
)

// UnknownUserError names the username that could not be resolved.
type UnknownUserError struct {
	Username string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %q", e.Username)
}

// Is lets errors.Is(err, ErrUnknownUser) match.
func (e *UnknownUserError) Is(target error) bool {
	return target == ErrUnknownUser
}
