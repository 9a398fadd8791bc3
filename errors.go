package hybrid

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when removing from a container without elements.
	ErrEmpty = errors.New("hybrid: container is empty")
	// ErrIndexOutOfRange is returned by indexed access past the last element.
	ErrIndexOutOfRange = errors.New("hybrid: index out of range")
	// ErrAllocation is returned when storage for a transition cannot be obtained.
	ErrAllocation = errors.New("hybrid: allocation failed")
	// ErrInvalidCapacity is returned by New for a non-positive inline capacity.
	ErrInvalidCapacity = errors.New("hybrid: inline capacity must be positive")
	// ErrCapacityMismatch is returned when moving between vectors with different
	// inline capacities.
	ErrCapacityMismatch = errors.New("hybrid: inline capacity mismatch")
)

// IndexError reports an access at Index on a container holding Size elements.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("hybrid: index %d out of range [0,%d)", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// AllocationError captures the slot count that could not be allocated. Limit
// is the configured ceiling, zero when the failure came from the runtime.
type AllocationError struct {
	Requested int
	Limit     int
	Err       error
}

func (e *AllocationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Limit > 0 {
		return fmt.Sprintf("hybrid: allocation of %d slots exceeds limit %d", e.Requested, e.Limit)
	}
	if e.Err != nil {
		return fmt.Sprintf("hybrid: allocation of %d slots failed: %v", e.Requested, e.Err)
	}
	return fmt.Sprintf("hybrid: allocation of %d slots failed", e.Requested)
}

func (e *AllocationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports ErrAllocation so callers can match the kind without unwrapping
// the runtime cause.
func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}

func indexError(index, size int) error {
	return &IndexError{Index: index, Size: size}
}

func wrapCopyError(index int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("hybrid: copy element %d: %w", index, err)
}
