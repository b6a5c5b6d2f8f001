package application

import (
	"errors"
	"fmt"

	"bookmarked/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CommandError represents a command that could not be applied to the document
type CommandError struct {
	Command string
	Address domain.Address
	Err     error
}

func (e *CommandError) Error() string {
	if e.Address == nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", e.Command, e.Address, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsStaleReference reports whether err means a command was built against an
// address that no longer fits the document. Presentation layers should drop the
// action and re-sync rather than show the error.
func IsStaleReference(err error) bool {
	return errors.Is(err, domain.ErrAddressNotFound) || errors.Is(err, domain.ErrStructuralViolation)
}
