// Package cancel provides the cooperative cancellation primitives the search
// engine polls on its hot path: a plain Flag interface, an atomic
// implementation callers can trip from another goroutine, and a rate-limited
// wrapper that amortizes the cost of checking it.
package cancel

import "sync/atomic"

// Flag reports whether a solve should stop.
type Flag interface {
	Cancelled() bool
}

// AtomicFlag is a Flag that can be tripped from another goroutine.
type AtomicFlag struct {
	flag atomic.Bool
}

// Cancel trips the flag. Safe to call from any goroutine, any number of
// times.
func (f *AtomicFlag) Cancel() { f.flag.Store(true) }

// Cancelled reports whether Cancel has been called.
func (f *AtomicFlag) Cancelled() bool { return f.flag.Load() }

type constFlag bool

func (c constFlag) Cancelled() bool { return bool(c) }

// NeverCancelled is a Flag that never reports cancellation.
var NeverCancelled Flag = constFlag(false)

// AlwaysCancelled is a Flag that always reports cancellation, for testing an
// already-cancelled solve.
var AlwaysCancelled Flag = constFlag(true)

// RateLimited wraps a Flag so that Cancelled only actually polls the
// underlying flag every rate-th call, returning the last observed answer the
// rest of the time. The search engine checks cancellation once per recursion
// step; at branching factors in the millions a raw atomic load per step is
// measurable, while checking every Nth step is not.
type RateLimited struct {
	underlying Flag
	rate       uint64
	count      uint64
	last       bool
}

// NewRateLimited wraps flag, polling it only once every rate calls to
// Cancelled. rate must be at least 1.
func NewRateLimited(flag Flag, rate uint64) *RateLimited {
	if rate < 1 {
		rate = 1
	}
	return &RateLimited{underlying: flag, rate: rate}
}

// Cancelled reports the last polled answer, polling the underlying flag
// fresh every rate-th call (including the very first).
func (r *RateLimited) Cancelled() bool {
	if r.count%r.rate == 0 {
		r.last = r.underlying.Cancelled()
	}
	r.count++
	return r.last
}

// NeverChecked reports whether Cancelled has never actually polled the
// underlying flag — i.e. the solve terminated before its first check. This
// disambiguates a root-level failure that happened before cancellation could
// even be observed from a genuine Infeasible result.
func (r *RateLimited) NeverChecked() bool { return r.count == 0 }

// Count returns the number of times Cancelled has been called.
func (r *RateLimited) Count() uint64 { return r.count }
