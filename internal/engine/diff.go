package engine

import (
	"github.com/brackwell/sudoku/internal/bitset"
	"github.com/brackwell/sudoku/internal/constraints"
	"github.com/brackwell/sudoku/internal/grid"
)

// Entry is one committed placement: a cell and the digit index (0..8) set
// there.
type Entry struct {
	Cell  bitset.Coord
	Digit int
}

// Diff is the pre-allocated log of placements committed along the current
// search path, one slot per cell in the grid.
type Diff struct {
	entries [CellCount]Entry
}

// NewDiff allocates a fresh Diff.
func NewDiff() *Diff { return &Diff{} }

// Tail returns a DiffTail spanning the whole diff.
func (d *Diff) Tail() DiffTail { return DiffTail{entries: d.entries[:]} }

// Entries returns the first n committed placements — the prefix filled in
// by a successful search path.
func (d *Diff) Entries(n int) []Entry { return d.entries[:n] }

// DiffTail is a shrinking view over the unused tail of a Diff.
type DiffTail struct {
	entries []Entry
}

// With commits the given (cell, digit-index) placements to cs and g, then
// calls f with the remaining tail. On any error from f, it unsets exactly
// what it just committed before propagating the error — this is the single
// place placements are applied and rolled back. On success it returns
// f's count plus the number of placements committed here.
func (t DiffTail) With(
	cells []bitset.Coord,
	digits []int,
	g grid.Grid,
	cs *constraints.Constraints,
	f func(g grid.Grid, cs *constraints.Constraints, tail DiffTail) (int, error),
) (int, error) {
	n := len(cells)
	for i := 0; i < n; i++ {
		t.entries[i] = Entry{Cell: cells[i], Digit: digits[i]}
	}
	rest := DiffTail{entries: t.entries[n:]}

	cs.SetMany(cells, digits)
	for i := 0; i < n; i++ {
		g.Set(cells[i].Row, cells[i].Col, constraints.ToDigit(digits[i]))
	}

	result, err := f(g, cs, rest)
	if err != nil {
		cs.UnsetMany(cells, digits)
		for i := 0; i < n; i++ {
			g.Clear(cells[i].Row, cells[i].Col)
		}
		return result, err
	}
	return result + n, nil
}
