package kdtree_test

import (
	"testing"

	"github.com/sablegraph/hdbscan/internal/fixtures"
	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/kdtree"
)

func BenchmarkBuild(b *testing.B) {
	pts := fixtures.Random(10000, 3, 1)
	pool := par.NewPool(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kdtree.Build(pts, pool); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNearestNeighbors(b *testing.B) {
	pts := fixtures.Random(10000, 3, 1)
	pool := par.NewPool(0, 0)
	tree, err := kdtree.Build(pts, pool)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.NearestNeighbors(pts[i%len(pts)], 5)
	}
}

func BenchmarkCoreDistances(b *testing.B) {
	pts := fixtures.Random(5000, 3, 1)
	pool := par.NewPool(0, 0)
	tree, err := kdtree.Build(pts, pool)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.CoreDistances(5, pool)
	}
}
