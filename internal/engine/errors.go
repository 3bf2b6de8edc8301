package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrPlacementConflict is returned by Place when the span is out of
	// bounds or overlaps an existing placement.
	ErrPlacementConflict = errors.New("cannot place equipment here")

	// ErrCorruptProject is returned by Load when the placements violate the
	// occupancy rules of the cabinet.
	ErrCorruptProject = errors.New("corrupt project")
)

// Conflict reasons reported by ConflictError.
const (
	ReasonOutOfBounds = "out of bounds"
	ReasonOverlap     = "overlap"
	ReasonInvalid     = "invalid"
)

// ConflictError describes why a placement was rejected.
type ConflictError struct {
	Position   int
	Units      int
	Reason     string
	BlockingID string // placement occupying the span, for ReasonOverlap
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ReasonOverlap:
		return fmt.Sprintf("%v: units %d-%d overlap placement %s",
			ErrPlacementConflict, e.Position, e.Position+e.Units-1, e.BlockingID)
	case ReasonOutOfBounds:
		return fmt.Sprintf("%v: %dU at unit %d is outside the cabinet",
			ErrPlacementConflict, e.Units, e.Position)
	default:
		return fmt.Sprintf("%v: invalid position %d or height %dU",
			ErrPlacementConflict, e.Position, e.Units)
	}
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrPlacementConflict
}

// CorruptProjectError describes the first violation found while loading.
type CorruptProjectError struct {
	PlacementID string
	Reason      string
}

func (e *CorruptProjectError) Error() string {
	if e.PlacementID == "" {
		return fmt.Sprintf("%v: %s", ErrCorruptProject, e.Reason)
	}
	return fmt.Sprintf("%v: placement %s: %s", ErrCorruptProject, e.PlacementID, e.Reason)
}

func (e *CorruptProjectError) Is(target error) bool {
	return target == ErrCorruptProject
}
