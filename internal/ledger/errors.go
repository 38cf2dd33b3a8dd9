package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateID is returned when an insert reuses an existing id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound is returned when a lookup by id fails.
	ErrNotFound = errors.New("not found")

	// ErrCycle is returned when a parent chain revisits an account.
	ErrCycle = errors.New("account hierarchy contains a cycle")

	// ErrAllocation is returned when a new id cannot be derived.
	ErrAllocation = errors.New("cannot allocate id")

	// ErrInvalidType is returned when an account type cannot be resolved.
	ErrInvalidType = errors.New("invalid account type")
)

// DuplicateIDError identifies the rejected insert.
type DuplicateIDError struct {
	Kind Kind
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Kind, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// NotFoundError identifies the missing record.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CycleError carries the chain walked up to and including the repeated id.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("account hierarchy cycle: %s", strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// AllocationError wraps the reason an id could not be allocated.
type AllocationError struct {
	Kind Kind
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocating %s id: %v", e.Kind, e.Err)
}

func (e *AllocationError) Unwrap() []error { return []error{ErrAllocation, e.Err} }
