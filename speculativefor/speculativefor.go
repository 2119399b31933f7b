// Package speculativefor implements a speculative reserve/commit parallel
// loop: a parallel-for over a priority-ordered index range [s, e)
// (smallest index first) that preserves the observable effect of running
// the same Step sequentially in that order.
//
// Each round reserves a batch of indices (held-over losers first, then the
// next slice of the priority order), runs Step.Reserve over the batch in
// parallel, then Step.Commit; an index that fails to commit is carried over
// to the next round. Because Reserve on a shared resource is required to be
// a monotone-minimum claim (see Reservation), the lowest-indexed outstanding
// iteration in any round always wins its resources and commits, which is
// what guarantees the loop makes progress every round.
package speculativefor

import (
	"errors"
	"fmt"

	"github.com/sablegraph/hdbscan/internal/par"
)

// ErrTooManyRetries indicates the round count exceeded MaxTries without
// draining the index range.
var ErrTooManyRetries = errors.New("speculativefor: too many retries")

// Step is the per-iteration contract a caller supplies. Reserve(i) should
// claim i's resources (typically via Reservation.Reserve on one or more
// shared slots) and never mutates shared state directly. Commit(i) checks
// whether i still holds every resource it needs and, if so, performs the
// mutation and returns true; otherwise it returns false and i is retried in
// a later round.
type Step interface {
	Reserve(i int)
	Commit(i int) bool
}

// Options configures the loop's retry budget and initial parallelism.
type Options struct {
	// Granularity feeds the default MaxTries (100 + 200*Granularity) when
	// MaxTries is left at zero; the default is 20.
	Granularity int

	// MaxTries caps the number of rounds before ErrTooManyRetries. Zero
	// means derive it from Granularity.
	MaxTries int

	// Pool bounds how many Reserve/Commit calls run as concurrent
	// goroutines; nil runs every round's batch sequentially.
	Pool *par.Pool
}

// DefaultOptions returns Options with granularity 20, which derives
// MaxTries = 100 + 200*20 = 4100, and a sequential Pool.
func DefaultOptions() Options {
	return Options{Granularity: 20, Pool: par.NewPool(0, 0)}
}

// Run drives Step over the index range [s, e) in priority order. Indices
// below 1/64th of the starting batch size are never produced as a round
// size of zero; Run returns nil once every index in [s, e) has committed.
func Run(step Step, s, e int, opts Options) error {
	n := e - s
	if n <= 0 {
		return nil
	}

	maxTries := opts.MaxTries
	if maxTries <= 0 {
		maxTries = 100 + 200*opts.Granularity
	}
	pool := opts.Pool
	if pool == nil {
		pool = par.NewPool(0, 0)
	}

	maxRoundSize := n
	minRoundSize := maxRoundSize/64 + 1
	roundSize := maxRoundSize

	var heldOver []int
	pos := s
	batch := make([]int, 0, maxRoundSize)

	for round := 0; len(heldOver) > 0 || pos < e; round++ {
		if round >= maxTries {
			return fmt.Errorf("speculativefor: round %d of %d: %w", round, maxTries, ErrTooManyRetries)
		}

		remaining := len(heldOver) + (e - pos)
		size := roundSize
		if size > remaining {
			size = remaining
		}

		batch = batch[:0]
		batch = append(batch, heldOver...)
		for len(batch) < size && pos < e {
			batch = append(batch, pos)
			pos++
		}

		pool.ParallelFor(batch, func(i int) { step.Reserve(i) })

		committed := make([]bool, len(batch))
		pool.ParallelFor(makeRange(len(batch)), func(idx int) {
			committed[idx] = step.Commit(batch[idx])
		})

		heldOver = heldOver[:0]
		for idx, i := range batch {
			if !committed[idx] {
				heldOver = append(heldOver, i)
			}
		}

		frac := float64(len(heldOver)) / float64(len(batch))
		switch {
		case frac > 0.2:
			roundSize = maxInt(roundSize/2, minRoundSize)
		case frac < 0.1:
			roundSize = minInt(roundSize*2, maxRoundSize)
		}
	}

	return nil
}

func makeRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
