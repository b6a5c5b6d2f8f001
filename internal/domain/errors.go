package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the document model
var (
	// ErrAddressNotFound indicates that no node exists at an address.
	// Usually the caller holds a stale address computed before a structural edit.
	ErrAddressNotFound = errors.New("address not found")

	// ErrStructuralViolation indicates an edit that would break the tree shape:
	// children under a non-folder, or deleting/moving the root.
	ErrStructuralViolation = errors.New("structural violation")

	// ErrInvalidAddress indicates an address string that cannot be parsed.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrSkipSubtree is returned from a Walk callback to skip a folder's children.
	ErrSkipSubtree = errors.New("skip subtree")
)

// AddressError records a failed document operation and the address it targeted
type AddressError struct {
	Op      string
	Address Address
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Address, e.Err)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

func notFound(op string, a Address) error {
	return &AddressError{Op: op, Address: a.Clone(), Err: ErrAddressNotFound}
}

func violation(op string, a Address, reason string) error {
	return &AddressError{Op: op, Address: a.Clone(), Err: fmt.Errorf("%w: %s", ErrStructuralViolation, reason)}
}
