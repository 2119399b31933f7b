// Package fixtures provides deterministic point generators shared by this
// module's tests: small named fixture builders plus seeded math/rand
// generators, so every test run sees the same inputs.
package fixtures

import (
	"math/rand"

	"github.com/sablegraph/hdbscan/point"
)

// Grid returns the rows*cols points of an axis-aligned 2-D lattice with
// spacing 1 between neighbors, starting at the origin. Useful for exact,
// hand-checkable expected MSTs: every edge of a Euclidean MST over the grid
// has weight 1, though many such trees exist since all lattice edges tie.
func Grid(rows, cols int) []point.Point {
	pts := make([]point.Point, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p, err := point.New([]float64{float64(r), float64(c)})
			if err != nil {
				panic(err)
			}
			pts = append(pts, p)
		}
	}

	return pts
}

// Line returns n collinear points (i, 0) for i in [0, n).
func Line(n int) []point.Point {
	pts := make([]point.Point, n)
	for i := range pts {
		p, err := point.New([]float64{float64(i), 0})
		if err != nil {
			panic(err)
		}
		pts[i] = p
	}

	return pts
}

// Clusters returns k groups of pointsPerCluster points each, the groups'
// anchors (c*spacing, 0) placed spacing apart along the first axis and each
// point offset from its anchor by a value in [0, 0.1) on each axis, using a
// seeded generator for reproducibility across test runs.
func Clusters(k, pointsPerCluster int, spacing float64, seed int64) []point.Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]point.Point, 0, k*pointsPerCluster)
	for c := 0; c < k; c++ {
		center := float64(c) * spacing
		for i := 0; i < pointsPerCluster; i++ {
			p, err := point.New([]float64{
				center + rng.Float64()*0.1,
				rng.Float64() * 0.1,
			})
			if err != nil {
				panic(err)
			}
			pts = append(pts, p)
		}
	}

	return pts
}

// Random returns n points of the given dimension with coordinates drawn
// uniformly from [-1, 1], reproducible for a fixed seed.
func Random(n, dim int, seed int64) []point.Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]point.Point, n)
	for i := range pts {
		coords := make([]float64, dim)
		for d := range coords {
			coords[d] = rng.Float64()*2 - 1
		}
		p, err := point.New(coords)
		if err != nil {
			panic(err)
		}
		pts[i] = p
	}

	return pts
}

// DuplicatePoint returns n copies of the same point, the coincident-point
// degenerate case (core distance 0 everywhere, zero-weight MST edges).
func DuplicatePoint(n int, coords []float64) []point.Point {
	p, err := point.New(coords)
	if err != nil {
		panic(err)
	}
	pts := make([]point.Point, n)
	for i := range pts {
		pts[i] = p
	}

	return pts
}
