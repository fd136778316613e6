package domain

import (
	"errors"
	"fmt"
)

// Expected failures are values, not faults. Every fallible operation returns
// one of these (possibly wrapped); handlers switch with errors.Is.
var (
	ErrNotFound              = errors.New("record not found")
	ErrSlotAlreadyBooked     = errors.New("slot already booked for that date and shift")
	ErrDuplicateAttendance   = errors.New("agent already enrolled in that session")
	ErrDuplicateBadge        = errors.New("an agent with that badge already exists")
	ErrDuplicateActivityName = errors.New("an activity with that name already exists")
	ErrNotAMonitor           = errors.New("agent is not flagged as a monitor")
	ErrInUse                 = errors.New("record is referenced by existing sessions")
	ErrStoreUnavailable      = errors.New("store unavailable")
)

// ValidationError reports malformed input. It is always raised before any
// store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
