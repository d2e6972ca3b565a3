package engine

import (
	"errors"

	"github.com/brackwell/sudoku/internal/bitset"
	"github.com/brackwell/sudoku/internal/cancel"
	"github.com/brackwell/sudoku/internal/constraints"
	"github.com/brackwell/sudoku/internal/grid"
	"github.com/brackwell/sudoku/internal/grouping"
	"github.com/brackwell/sudoku/internal/permute"
	"github.com/brackwell/sudoku/internal/solvererr"
)

// Step is the recursive solve function. On success it returns the number of
// placements appended to diff along this path. stats, if non-nil,
// accumulates node and backtrack counters across the whole search; pass nil
// to skip instrumentation entirely.
func Step(
	cancelFlag *cancel.RateLimited,
	stats *Stats,
	frame *StackFrame,
	g grid.Grid,
	cs *constraints.Constraints,
	stack StackTail,
	diff DiffTail,
) (int, error) {
	stats.node()

	// Step 1: snapshot grouped candidates.
	g.Each(func(row, col, digit int, ok bool) {
		if ok {
			return
		}
		cell := bitset.Coord{Row: row, Col: col}
		frame.grouped.Add(cell, cs.Domain(row, col))
	})
	frame.grouped.SortAll()

	// Step 2: termination / inconsistency scan.
	runs := 0
	overconstrained := false
	frame.grouped.Scan(func(run []grouping.Entry) {
		runs++
		if len(run) > run[0].Domain.Size() {
			overconstrained = true
		}
	})
	if runs == 0 {
		return 0, nil
	}
	if overconstrained {
		stats.backtrack()
		return 0, solvererr.ErrInfeasible
	}

	// Step 3: cancellation probe, only after Step 2 has run.
	if cancelFlag.Cancelled() {
		return 0, solvererr.ErrCancelled
	}

	// Step 4: naked subsets.
	if result, err, handled := tryNakedSubsets(cancelFlag, stats, frame, g, cs, stack, diff); handled {
		return result, err
	}

	// Step 5: hidden subsets.
	if result, err, handled := tryHiddenSubsets(cancelFlag, stats, frame, g, cs, stack, diff); handled {
		return result, err
	}

	// Step 6: minimum-domain branching.
	return branchOnMinimumDomain(cancelFlag, stats, frame, g, cs, stack, diff)
}

func recurseOnDigits(
	cancelFlag *cancel.RateLimited,
	stats *Stats,
	frame *StackFrame,
	cells []bitset.Coord,
	digits []int,
	g grid.Grid,
	cs *constraints.Constraints,
	stack StackTail,
	diff DiffTail,
) (int, error) {
	return stack.With(func(nextFrame *StackFrame, nextStack StackTail) (int, error) {
		return diff.With(cells, digits, g, cs, func(g grid.Grid, cs *constraints.Constraints, nextDiff DiffTail) (int, error) {
			return Step(cancelFlag, stats, nextFrame, g, cs, nextStack, nextDiff)
		})
	})
}

// tryNakedSubsets implements spec step 4. handled is true once a naked-k run
// was found for some k: the spec requires immediately returning whatever
// that run's permutations settle on (success, cancellation, or — since the
// rule is sound — the subset's own Infeasible), without trying a different
// k or falling through to hidden subsets.
func tryNakedSubsets(
	cancelFlag *cancel.RateLimited,
	stats *Stats,
	frame *StackFrame,
	g grid.Grid,
	cs *constraints.Constraints,
	stack StackTail,
	diff DiffTail,
) (result int, err error, handled bool) {
	for k := 1; k <= permute.MaxLen; k++ {
		cells, domain, ok := frame.grouped.FindNakedRun(k)
		if !ok {
			continue
		}
		digits := domain.AppendCandidates(frame.digitBuf[:0])
		result, err = frame.perm.TryFind(digits, func(perm []int) (int, error) {
			return recurseOnDigits(cancelFlag, stats, frame, cells, perm, g, cs, stack, diff)
		}, isCancelled)
		return result, err, true
	}
	return 0, nil, false
}

// tryHiddenSubsets implements spec step 5: unlike naked subsets, an
// Infeasible result here falls through to the next k, then the next unit,
// only surfacing once every unit/size combination has been tried.
func tryHiddenSubsets(
	cancelFlag *cancel.RateLimited,
	stats *Stats,
	frame *StackFrame,
	g grid.Grid,
	cs *constraints.Constraints,
	stack StackTail,
	diff DiffTail,
) (result int, err error, handled bool) {
	units := frame.grouped.Units()
	for u := range units {
		unit := units[u]
		if len(unit) == 0 {
			continue
		}
		frame.hidden.Init(unit)
		for k := 1; k <= permute.MaxLen; k++ {
			digitMask, cells, ok := frame.hidden.Find(k)
			if !ok {
				continue
			}
			digits := frame.digitBuf[:0]
			for d := 0; d < 9; d++ {
				if digitMask.Has(d) {
					digits = append(digits, d)
				}
			}
			result, err = frame.perm.TryFind(digits, func(perm []int) (int, error) {
				return recurseOnDigits(cancelFlag, stats, frame, cells, perm, g, cs, stack, diff)
			}, isCancelled)
			if err == nil || errors.Is(err, solvererr.ErrCancelled) {
				return result, err, true
			}
			// Infeasible: fall through to the next k, then the next unit.
		}
	}
	return 0, nil, false
}

// branchOnMinimumDomain implements spec step 6, the last resort: pick the
// empty cell with the smallest domain, try its candidates lowest first.
func branchOnMinimumDomain(
	cancelFlag *cancel.RateLimited,
	stats *Stats,
	frame *StackFrame,
	g grid.Grid,
	cs *constraints.Constraints,
	stack StackTail,
	diff DiffTail,
) (int, error) {
	frame.emptyCells.reset()
	g.Each(func(row, col, digit int, ok bool) {
		if ok {
			return
		}
		domain := cs.Domain(row, col)
		frame.emptyCells.add(domain.Size(), bitset.Coord{Row: row, Col: col})
	})

	for size := 1; size <= 9; size++ {
		for _, cell := range frame.emptyCells.cells(size) {
			domain := cs.Domain(cell.Row, cell.Col)
			digits := domain.AppendCandidates(frame.digitBuf[:0])
			frame.cellBuf[0] = cell
			for _, d := range digits {
				var one [1]int
				one[0] = d
				result, err := recurseOnDigits(cancelFlag, stats, frame, frame.cellBuf[:1], one[:], g, cs, stack, diff)
				if err == nil || errors.Is(err, solvererr.ErrCancelled) {
					return result, err
				}
			}
		}
	}
	stats.backtrack()
	return 0, solvererr.ErrInfeasible
}

func isCancelled(err error) bool { return errors.Is(err, solvererr.ErrCancelled) }
