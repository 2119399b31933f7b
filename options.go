package hdbscan

import (
	"errors"
	"runtime"

	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/speculativefor"
)

// ErrEmptyInput indicates Run was called with no points.
var ErrEmptyInput = errors.New("hdbscan: empty input")

// ErrInvalidPoint indicates a point failed validation (NaN/Inf coordinate,
// or a coordinate count that disagrees with the rest of the input).
var ErrInvalidPoint = errors.New("hdbscan: invalid point")

// ErrUnsatisfied indicates Run cannot reach the n-1 MST edges a spanning
// tree needs: either minPts exceeds the number of input points (no core
// distance is computable), or the outer loop stalled past its safeguard
// cap without connecting the remaining components.
var ErrUnsatisfied = errors.New("hdbscan: cannot complete spanning tree")

// Progress is an optional hook Run calls once per outer-loop round: a way
// for a caller to observe the algorithm's progress without this package depending on any
// particular logger.
type Progress func(round int, beta int, rhoLo, rhoHi float64, edges int)

// Options configures one Run call. Use DefaultOptions to get the
// defaults, and the WithXxx constructors to override individual fields.
type Options struct {
	// MinPts is the k in "core distance = distance to the k-th nearest
	// neighbor". Must be >= 1.
	MinPts int

	// ParThreshold is the minimum combined subtree size at which
	// recursive calls fork onto a new goroutine.
	ParThreshold int

	// MaxParallel bounds the number of goroutines the pipeline may run
	// concurrently at once. 0 disables forking entirely (useful for
	// deterministic single-goroutine runs in tests).
	MaxParallel int64

	// Granularity and MaxTries configure the batched speculative Kruskal
	// pass (subpackage speculativefor); see speculativefor.Options.
	Granularity int
	MaxTries    int

	// Progress, if non-nil, is called once per outer-loop round.
	Progress Progress
}

// Option mutates an Options value; see the WithXxx constructors below.
type Option func(*Options)

// DefaultOptions returns the defaults: minPts=5, fork threshold 2000, one
// goroutine per CPU, and speculativefor.DefaultOptions()'s
// granularity/retry budget.
func DefaultOptions() Options {
	sfDefault := speculativefor.DefaultOptions()

	return Options{
		MinPts:       5,
		ParThreshold: par.DefaultThreshold,
		MaxParallel:  int64(runtime.NumCPU()),
		Granularity:  sfDefault.Granularity,
		MaxTries:     sfDefault.MaxTries,
	}
}

// WithMinPts overrides the core-distance neighbor count.
func WithMinPts(k int) Option {
	return func(o *Options) { o.MinPts = k }
}

// WithParThreshold overrides the fork threshold.
func WithParThreshold(threshold int) Option {
	return func(o *Options) { o.ParThreshold = threshold }
}

// WithMaxParallel bounds the number of goroutines the pipeline may run
// concurrently. A non-positive value means "run entirely on the caller's
// goroutine" (no forking at all).
func WithMaxParallel(n int64) Option {
	return func(o *Options) { o.MaxParallel = n }
}

// WithGranularity overrides the speculative-for granularity, from which the
// retry budget is derived (100 + 200*granularity) when MaxTries is zero.
func WithGranularity(g int) Option {
	return func(o *Options) { o.Granularity = g }
}

// WithMaxTries overrides the speculative-for retry budget per round.
func WithMaxTries(n int) Option {
	return func(o *Options) { o.MaxTries = n }
}

// WithProgress installs a round-progress hook.
func WithProgress(fn Progress) Option {
	return func(o *Options) { o.Progress = fn }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
