package pmatch

import (
	"errors"
	"fmt"

	"github.com/npillmayer/pmatch/pattern"
)

var (
	// ErrNoArmMatched is returned if no arm matches a value. It is an expected
	// outcome for non-exhaustive arm lists.
	ErrNoArmMatched = errors.New("no match arm matched")
	// ErrNoHandler is returned by Dispatch for a handler identifier without handler.
	ErrNoHandler = errors.New("no handler for match arm")
	// ErrUnboundGuardVariable flags a guard reading a name its pattern does not bind.
	ErrUnboundGuardVariable = errors.New("guard variable not bound by pattern")
	// ErrPatternValidation is the category of all validation errors.
	ErrPatternValidation = pattern.ErrInvalid
)

// ValidationError reports a malformed match arm.
type ValidationError struct {
	Arm     int    // index of the offending arm
	Handler string // handler identifier of the offending arm
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Handler == "" {
		return fmt.Sprintf("match arm #%d: %v", e.Arm, e.Err)
	}
	return fmt.Sprintf("match arm #%d (%s): %v", e.Arm, e.Handler, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
