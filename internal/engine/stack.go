// Package engine implements the recursive search step (C7) over the
// pre-allocated recursion stack and diff log (C6).
package engine

import (
	"github.com/brackwell/sudoku/internal/bitset"
	"github.com/brackwell/sudoku/internal/grouping"
	"github.com/brackwell/sudoku/internal/permute"
)

// CellCount is the number of cells in a 9x9 grid.
const CellCount = 81

// maxStackDepth bounds recursion at one level per legal placement plus a
// sentinel frame.
const maxStackDepth = CellCount + 1

// emptyCellsByDomainSize buckets the grid's currently-unassigned cells by
// domain size (0..9), used to pick a minimum-domain branching cell without
// a full rescan or a heap-allocated sort.
type emptyCellsByDomainSize struct {
	buckets [10][CellCount]bitset.Coord
	lens    [10]int
}

func (e *emptyCellsByDomainSize) reset() {
	for i := range e.lens {
		e.lens[i] = 0
	}
}

func (e *emptyCellsByDomainSize) add(size int, c bitset.Coord) {
	e.buckets[size][e.lens[size]] = c
	e.lens[size]++
}

func (e *emptyCellsByDomainSize) cells(size int) []bitset.Coord {
	return e.buckets[size][:e.lens[size]]
}

// StackFrame is one recursion level's scratch: cleared and reused rather
// than allocated fresh on every call.
type StackFrame struct {
	grouped    grouping.GroupedByUnit
	hidden     grouping.HiddenSets
	perm       permute.Permutator[int]
	emptyCells emptyCellsByDomainSize
	digitBuf   [9]int
	cellBuf    [permute.MaxLen]bitset.Coord
}

func (f *StackFrame) reset() {
	f.grouped.Reset()
	f.emptyCells.reset()
}

// Stack is CellCount+1 pre-allocated frames, heap-allocated once per solve.
type Stack struct {
	frames [maxStackDepth]StackFrame
}

// NewStack allocates a fresh Stack.
func NewStack() *Stack { return &Stack{} }

// Tail returns a StackTail spanning the whole stack.
func (s *Stack) Tail() StackTail { return StackTail{frames: s.frames[:]} }

// StackTail is a shrinking view over the remaining, unused stack frames.
type StackTail struct {
	frames []StackFrame
}

// With splits the first frame off the tail, clears it, and hands it and the
// strictly shorter remaining tail to f. This is the only way to obtain a
// StackFrame, which keeps each recursion level's scratch distinct from its
// caller's and its callees'.
func (t StackTail) With(f func(frame *StackFrame, tail StackTail) (int, error)) (int, error) {
	frame := &t.frames[0]
	frame.reset()
	return f(frame, StackTail{frames: t.frames[1:]})
}
