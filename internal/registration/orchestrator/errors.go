package orchestrator

import (
	"fmt"
	"strings"

	"retreat/internal/registration/steps"
	dErrors "retreat/pkg/domain-errors"
	"retreat/pkg/platform/sentinel"
)

var (
	// ErrConcurrentEdit means more than one section was found editing. The
	// orchestrator never produces this state itself; seeing it is a bug.
	ErrConcurrentEdit = dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeInvariantViolation, "more than one section is being edited")
	// ErrEditInProgress is returned by Submit while a section is being edited.
	ErrEditInProgress = dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeConflict, "save or cancel the section being edited first")
	// ErrAlreadySubmitted is returned by every mutation after Submit succeeded.
	ErrAlreadySubmitted = dErrors.Wrap(sentinel.ErrAlreadyUsed, dErrors.CodeConflict, "registration already submitted")

	errIncomplete = dErrors.New(dErrors.CodeIncomplete, "registration is incomplete")
)

// IncompleteRegistrationError is returned by Submit when a required step is
// not complete. Step is where the user should be sent back to.
type IncompleteRegistrationError struct {
	Step    steps.ID
	Missing []string
}

func (e *IncompleteRegistrationError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("registration incomplete: step %s", e.Step)
	}
	return fmt.Sprintf("registration incomplete: step %s is missing %s", e.Step, strings.Join(e.Missing, ", "))
}

func (e *IncompleteRegistrationError) Unwrap() error {
	return errIncomplete
}
