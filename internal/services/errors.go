package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by RoomService for a client mistake wraps one of these.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrValidation        = errors.New("validation error")
)

var (
	ErrRoomNotFound         = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrHistoryEntryNotFound = fmt.Errorf("%w: entry not found or could not be deleted", ErrNotFound)
	ErrRoomOccupied         = fmt.Errorf("%w: room already occupied", ErrInvalidTransition)
	ErrRoomAvailable        = fmt.Errorf("%w: room already available", ErrInvalidTransition)
	ErrNoGuest              = fmt.Errorf("%w: no guest to update", ErrInvalidState)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Message strips the kind prefix so handlers can show the human-readable part.
func Message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	for _, kind := range []error{ErrNotFound, ErrInvalidTransition, ErrInvalidState} {
		if errors.Is(err, kind) {
			return strings.TrimPrefix(err.Error(), kind.Error()+": ")
		}
	}
	return err.Error()
}
