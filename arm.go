package pmatch

import (
	"fmt"

	"github.com/npillmayer/pmatch/guard"
	"github.com/npillmayer/pmatch/pattern"
	"golang.org/x/exp/slices"
)

// Arm is a single alternative of a match: a pattern, an optional guard and the
// identifier of the handler to run if the arm wins.
type Arm struct {
	Pattern pattern.Pattern
	Guard   guard.Guard // may be nil
	Handler string
}

// Case creates an unguarded arm.
func Case(p pattern.Pattern, handler string) Arm {
	return Arm{Pattern: p, Handler: handler}
}

// When creates a guarded arm.
func When(p pattern.Pattern, g guard.Guard, handler string) Arm {
	return Arm{Pattern: p, Guard: g, Handler: handler}
}

func (arm Arm) String() string {
	s := fmt.Sprintf("%v", arm.Pattern)
	if arm.Guard != nil {
		s += " if <guard>"
	}
	return s + " => " + arm.Handler
}

// Validate checks a list of arms without matching any value. It reports the
// first malformed arm as a *ValidationError, wrapping either a *pattern.Error or
// ErrUnboundGuardVariable. Every validation error satisfies
// errors.Is(err, ErrPatternValidation).
func Validate(arms []Arm) error {
	for i, arm := range arms {
		if err := validateArm(arm); err != nil {
			return &ValidationError{Arm: i, Handler: arm.Handler, Err: err}
		}
	}
	return nil
}

func validateArm(arm Arm) error {
	if err := pattern.Check(arm.Pattern); err != nil {
		return err
	}
	if arm.Guard == nil {
		return nil
	}
	bound := pattern.Names(arm.Pattern)
	for _, name := range arm.Guard.Vars() {
		if !slices.Contains(bound, name) {
			return fmt.Errorf("%w: %w: %s", ErrPatternValidation, ErrUnboundGuardVariable, name)
		}
	}
	return nil
}
