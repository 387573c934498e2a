package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers classify with errors.Is against these.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrInvalidMatchAction   = fmt.Errorf("%w: action must be ACCEPT or REJECT", ErrValidation)
	ErrProfileRequired      = fmt.Errorf("%w: create your profile before generating matches", ErrValidation)
	ErrInvalidInput         = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrMatchNotFound        = fmt.Errorf("%w: match not found", ErrNotFound)
	ErrProfileNotFound      = fmt.Errorf("%w: profile not found", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", ErrNotFound)
	ErrNotMatchParticipant  = fmt.Errorf("%w: not a party to this match", ErrForbidden)
	ErrMatchUpdateConflict  = fmt.Errorf("%w: match was updated concurrently, try again", ErrConflict)
	ErrSkillAlreadyExists   = fmt.Errorf("%w: skill already exists", ErrConflict)
	ErrInvalidRefreshToken  = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	ErrMessageRequired      = fmt.Errorf("%w: message content required", ErrValidation)
	ErrMessageTooLong       = fmt.Errorf("%w: message content too long", ErrValidation)
	ErrMatchClosed          = fmt.Errorf("%w: match was rejected", ErrForbidden)
	ErrRefreshTokenExpired  = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
)
