// Package point defines the immutable coordinate-vector type shared by the
// rest of this module, the Euclidean metric over it, and a total order used
// for deterministic sorting and tie-breaking.
//
// A Point is created once (usually by a caller's ingestion layer) and never
// mutated afterward; every downstream package (kdtree, wspd, bccp, ...) only
// ever reads a Point's coordinates.
package point

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sentinel errors for point construction and validation.
var (
	// ErrEmptyInput indicates an empty point set or a point with zero dimensions.
	ErrEmptyInput = errors.New("point: empty input")

	// ErrInvalidPoint indicates a NaN or non-finite coordinate, or a
	// dimensionality mismatch against the rest of the set.
	ErrInvalidPoint = errors.New("point: invalid point")
)

// Point is an immutable d-dimensional coordinate vector. d >= 1 and every
// coordinate is finite; NaN is rejected at construction (see New and
// ValidateSet).
type Point struct {
	coords []float64
}

// New constructs a Point from coords, copying the slice so later mutation of
// the caller's slice cannot observe through the Point. Returns ErrEmptyInput
// if coords is empty, or ErrInvalidPoint if any coordinate is NaN or +/-Inf.
func New(coords []float64) (Point, error) {
	if len(coords) == 0 {
		return Point{}, ErrEmptyInput
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Point{}, fmt.Errorf("point: coordinate %v: %w", c, ErrInvalidPoint)
		}
	}
	cp := make([]float64, len(coords))
	copy(cp, coords)

	return Point{coords: cp}, nil
}

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p.coords) }

// At returns the i-th coordinate.
func (p Point) At(i int) float64 { return p.coords[i] }

// Coords returns a defensive copy of the underlying coordinates. Callers
// that only need to read should prefer At to avoid the allocation.
func (p Point) Coords() []float64 {
	cp := make([]float64, len(p.coords))
	copy(cp, p.coords)

	return cp
}

// Distance returns the Euclidean distance between p and q (the Minkowski
// distance of order 2), delegating the reduction to gonum/floats. Both
// points must share the same dimensionality; this is a precondition
// enforced by ValidateSet at ingestion, not rechecked per call for
// performance.
func (p Point) Distance(q Point) float64 {
	return floats.Distance(p.coords, q.coords, 2)
}

// Less implements the total order used for deterministic sorting: lexicographic
// comparison of coordinates, with -0.0 treated as equal to +0.0 (NaN cannot
// occur per New's validation, so no special case is needed for it).
func (p Point) Less(q Point) bool {
	for i := range p.coords {
		if p.coords[i] != q.coords[i] {
			return p.coords[i] < q.coords[i]
		}
	}

	return false
}

// Equal reports coordinate-wise equality.
func (p Point) Equal(q Point) bool {
	if len(p.coords) != len(q.coords) {
		return false
	}
	for i := range p.coords {
		if p.coords[i] != q.coords[i] {
			return false
		}
	}

	return true
}

// ValidateSet checks that every point in pts is non-empty, finite, and of
// the same dimensionality as pts[0]. Returns ErrEmptyInput for an empty
// slice or a point with no coordinates, ErrInvalidPoint for a non-finite
// coordinate or a dimensionality mismatch.
func ValidateSet(pts []Point) error {
	if len(pts) == 0 {
		return ErrEmptyInput
	}
	d := pts[0].Dim()
	for i, p := range pts {
		if p.Dim() == 0 {
			return fmt.Errorf("point: point %d has no coordinates: %w", i, ErrEmptyInput)
		}
		if p.Dim() != d {
			return fmt.Errorf("point: point %d has dimension %d, want %d: %w", i, p.Dim(), d, ErrInvalidPoint)
		}
		for _, c := range p.coords {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("point: point %d coordinate %v: %w", i, c, ErrInvalidPoint)
			}
		}
	}

	return nil
}
