package pairpot

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady indicates Compute was called before a family was bound.
	ErrNotReady = errors.New("pairpot: no potential family bound")

	// ErrNilFamily indicates a nil family was passed to Bind.
	ErrNilFamily = errors.New("pairpot: nil potential family")

	// ErrAlreadyBound indicates Bind was called on a potential that already
	// has a family. Release it first.
	ErrAlreadyBound = errors.New("pairpot: potential family already bound")

	// ErrParameterMismatch indicates per-particle arrays of different lengths.
	ErrParameterMismatch = errors.New("pairpot: parameter arrays differ in length")

	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("pairpot: parameter out of valid bounds")

	// ErrScalingOrder indicates primary-image neighbors were not sorted by
	// particle index, which the scaling cursor relies on.
	ErrScalingOrder = errors.New("pairpot: neighbor list not sorted for scaling lookup")
)

// OrderError reports where a neighbor list broke the ascending order
// required by the scaling lookup.
type OrderError struct {
	Center   int
	Position int
	Previous int
	Other    int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%v: center %d, entry %d queries %d after %d",
		ErrScalingOrder, e.Center, e.Position, e.Other, e.Previous)
}

func (e *OrderError) Unwrap() error {
	return ErrScalingOrder
}
