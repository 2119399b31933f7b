// Package par provides the shared fork/join primitive used by kdtree, wspd,
// mark, and the core-distance augmentation pass: two-way recursion that runs
// in parallel once a subtree's size crosses a threshold, and sequentially on
// the caller's own goroutine otherwise. Concentrating the pattern here gives
// every fork site one shared goroutine budget instead of a private one each.
package par

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultThreshold is the minimum combined subtree size at which a
// recursive call forks onto a new goroutine instead of running inline. It
// is a tuning knob, never a correctness parameter.
const DefaultThreshold = 2000

// Pool bounds the number of subtree recursions that may run as concurrent
// goroutines at once. A Pool is safe for concurrent use by many goroutines at once
// (the whole point: every fork site shares one Pool across the traversal).
type Pool struct {
	sem       *semaphore.Weighted
	threshold int
}

// NewPool creates a Pool that allows at most maxParallel subtree recursions
// to run concurrently, forking only when the recursing subtree's combined
// size is at least threshold. maxParallel <= 0 means "no forking at all"
// (every Join/JoinErr call runs sequentially); threshold <= 0 falls back to
// DefaultThreshold.
func NewPool(maxParallel int64, threshold int) *Pool {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	var sem *semaphore.Weighted
	if maxParallel > 0 {
		sem = semaphore.NewWeighted(maxParallel)
	}

	return &Pool{sem: sem, threshold: threshold}
}

// Join runs left then right, forking right onto a separate goroutine when
// size >= the pool's threshold and a pool slot is available; otherwise both
// run sequentially on the caller's goroutine. Blocks until both complete.
func (p *Pool) Join(size int, left, right func()) {
	if p.sem == nil || size < p.threshold || !p.sem.TryAcquire(1) {
		left()
		right()

		return
	}
	defer p.sem.Release(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		right()
	}()
	left()
	<-done
}

// JoinErr is Join's error-propagating counterpart, used at WSPD recursion
// sites where a leaf/leaf pair that should have been well-separated signals
// InvariantViolated. If both sides error, left's error wins (matching
// errgroup.Group's first-error-wins semantics).
func (p *Pool) JoinErr(size int, left, right func() error) error {
	if p.sem == nil || size < p.threshold || !p.sem.TryAcquire(1) {
		if err := left(); err != nil {
			return err
		}

		return right()
	}
	defer p.sem.Release(1)

	g, _ := errgroup.WithContext(context.Background())
	g.Go(right)
	if err := left(); err != nil {
		_ = g.Wait()

		return err
	}

	return g.Wait()
}

// Threshold reports the pool's fork threshold.
func (p *Pool) Threshold() int { return p.threshold }

// MaxParallel reports whether this pool may fork at all: false for
// NewPool(0, ...), true otherwise, even while every semaphore slot is taken
// and calls are running sequentially.
func (p *Pool) MaxParallel() bool { return p.sem != nil }

// ParallelFor calls fn(i) for every i in indices, fanning out across
// goroutines bounded by the pool's semaphore when len(indices) is at least
// the pool's threshold; otherwise it runs sequentially on the caller's
// goroutine. Used by speculativefor's reserve/commit batches and the WSPD
// edge collector's per-pair fan-out, which are flat index ranges rather than
// the tree-shaped two-way recursion Join targets.
func (p *Pool) ParallelFor(indices []int, fn func(i int)) {
	if p.sem == nil || len(indices) < p.threshold {
		for _, i := range indices {
			fn(i)
		}

		return
	}

	var g errgroup.Group
	for _, i := range indices {
		i := i
		if p.sem.TryAcquire(1) {
			g.Go(func() error {
				defer p.sem.Release(1)
				fn(i)

				return nil
			})
		} else {
			fn(i)
		}
	}
	_ = g.Wait()
}
