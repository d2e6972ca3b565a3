// Package sudoku is a cancellable, backtracking constraint-propagation
// Sudoku solver. Solve takes a partially filled 9x9 grid and either
// completes it, reports it as infeasible, reports that the input already
// violates Sudoku's rules, or reports that a cooperative cancellation
// signal stopped the search.
package sudoku

import (
	"errors"
	"sort"

	"github.com/brackwell/sudoku/internal/cancel"
	"github.com/brackwell/sudoku/internal/constraints"
	"github.com/brackwell/sudoku/internal/engine"
	"github.com/brackwell/sudoku/internal/grid"
	"github.com/brackwell/sudoku/internal/solvererr"
	"github.com/brackwell/sudoku/internal/status"
)

// Flag is a cooperative cancellation signal, pollable from the solving
// goroutine while another goroutine sets it.
type Flag = cancel.Flag

// NeverCancelled never reports cancellation.
var NeverCancelled = cancel.NeverCancelled

// AlreadyCancelled always reports cancellation, for testing an
// already-cancelled solve.
var AlreadyCancelled = cancel.AlwaysCancelled

// Grid is the capability set the solver requires of its input: indexed
// read/write and row-major iteration.
type Grid = grid.Grid

// ArrGridRowMajor is the solver's own array-backed Grid implementation.
type ArrGridRowMajor = grid.ArrGridRowMajor

// NewGrid returns an empty grid using the solver's own array-backed
// implementation.
func NewGrid() *grid.ArrGridRowMajor { return grid.New() }

// Errors returned by Solve.
var (
	ErrInfeasible          = solvererr.ErrInfeasible
	ErrCancelled           = solvererr.ErrCancelled
	ErrConstraintsViolated = solvererr.ErrConstraintsViolated
)

// DiffKind distinguishes the two GridDiff variants. Solve only ever emits
// DiffSet.
type DiffKind int

const (
	DiffSet DiffKind = iota
	DiffUnset
)

// GridDiff is one cell mutation: a placed digit, or (never produced by
// Solve) its removal.
type GridDiff struct {
	Kind  DiffKind
	Row   int
	Col   int
	Digit int // 1..9, meaningful only when Kind == DiffSet
}

// cancellationRate is how often the engine's rate-limited probe actually
// polls the underlying flag; see internal/cancel for the amortisation this
// buys.
const cancellationRate = 1024

// Stats reports search instrumentation for one Solve call: how many
// recursive search nodes were visited and how many of them dead-ended and
// forced a backtrack.
type Stats = engine.Stats

// Solve completes g, returning the set of placements that fill every
// initially-empty cell, in row-major order. g is never mutated; the search
// runs against an internal working copy.
//
// It returns ErrConstraintsViolated if g already has two equal digits in
// some row, column, or box; ErrInfeasible if g is internally consistent but
// has no completion; ErrCancelled if cancel reported cancellation before a
// verdict was reached.
func Solve(cancelFlag Flag, g Grid) ([]GridDiff, error) {
	diffs, _, err := solve(cancelFlag, g, nil)
	return diffs, err
}

// SolveWithStats behaves exactly like Solve, additionally reporting search
// instrumentation (node count, backtrack count) for the attempt.
func SolveWithStats(cancelFlag Flag, g Grid) ([]GridDiff, Stats, error) {
	return solve(cancelFlag, g, &Stats{})
}

func solve(cancelFlag Flag, g Grid, stats *Stats) ([]GridDiff, Stats, error) {
	if st, _ := status.Check(g); st == status.Violated {
		return nil, Stats{}, solvererr.ErrConstraintsViolated
	}

	working := g.Copy()
	cs := constraints.FromGrid(working)

	rl := cancel.NewRateLimited(cancelFlag, cancellationRate)
	stack := engine.NewStack()
	diff := engine.NewDiff()

	n, err := stack.Tail().With(func(frame *engine.StackFrame, stackTail engine.StackTail) (int, error) {
		return diff.Tail().With(nil, nil, working, cs, func(working grid.Grid, cs *constraints.Constraints, diffTail engine.DiffTail) (int, error) {
			return engine.Step(rl, stats, frame, working, cs, stackTail, diffTail)
		})
	})

	if err != nil {
		if errors.Is(err, solvererr.ErrInfeasible) && rl.NeverChecked() {
			// The one Step call that ran never got past its own domain scan
			// before discovering the grid was already broken; report it as
			// no search having run at all, rather than "1 node, 1 backtrack".
			return nil, Stats{}, solvererr.ErrConstraintsViolated
		}
		return nil, readStats(stats), err
	}

	diffs := make([]GridDiff, n)
	for i, e := range diff.Entries(n) {
		diffs[i] = GridDiff{Kind: DiffSet, Row: e.Cell.Row, Col: e.Cell.Col, Digit: constraints.ToDigit(e.Digit)}
	}
	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Row*9+diffs[i].Col < diffs[j].Row*9+diffs[j].Col
	})
	return diffs, readStats(stats), nil
}

func readStats(stats *Stats) Stats {
	if stats == nil {
		return Stats{}
	}
	return *stats
}

// Apply writes every GridDiff in diffs to g.
func Apply(g Grid, diffs []GridDiff) {
	for _, d := range diffs {
		switch d.Kind {
		case DiffSet:
			g.Set(d.Row, d.Col, d.Digit)
		case DiffUnset:
			g.Clear(d.Row, d.Col)
		}
	}
}
