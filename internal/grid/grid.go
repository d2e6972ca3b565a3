// Package grid provides the opaque 9x9 puzzle container the solver core
// consumes through a narrow capability interface: indexed read, indexed
// write, and row-major iteration. The core never depends on the concrete
// type; ArrGridRowMajor is the one concrete implementation the rest of this
// module uses at its I/O boundaries (codec, status checker, CLI).
package grid

import "fmt"

// CellCount is the number of cells in a 9x9 grid.
const CellCount = 9 * 9

// Grid is the capability set the solver core requires of a puzzle
// container: indexed read/write of an optional digit (1..9, or 0 for empty)
// and row-major iteration.
type Grid interface {
	// Get returns the digit at (row, col) and whether the cell is filled.
	Get(row, col int) (digit int, ok bool)
	// Set places digit (1..9) at (row, col).
	Set(row, col int, digit int)
	// Clear empties the cell at (row, col).
	Clear(row, col int)
	// Each calls f for every cell in row-major order.
	Each(f func(row, col int, digit int, ok bool))
	// Copy returns an independent deep copy.
	Copy() Grid
}

// ArrGridRowMajor is the canonical Grid: 81 optional digits stored in
// row-major order, chosen because building Constraints from a grid needs one
// full pass over placed cells and the search needs O(1) random access.
type ArrGridRowMajor struct {
	cells [CellCount]int8 // 0 = empty, else the digit 1..9
	given [CellCount]bool // true if the cell was part of the original puzzle
}

// New returns an empty 9x9 grid.
func New() *ArrGridRowMajor {
	return &ArrGridRowMajor{}
}

func index(row, col int) int { return row*9 + col }

// Get implements Grid.
func (g *ArrGridRowMajor) Get(row, col int) (int, bool) {
	v := g.cells[index(row, col)]
	if v == 0 {
		return 0, false
	}
	return int(v), true
}

// Set implements Grid.
func (g *ArrGridRowMajor) Set(row, col int, digit int) {
	if digit < 1 || digit > 9 {
		panic(fmt.Sprintf("grid: digit %d out of range at (%d,%d)", digit, row, col))
	}
	g.cells[index(row, col)] = int8(digit)
}

// Clear implements Grid.
func (g *ArrGridRowMajor) Clear(row, col int) {
	g.cells[index(row, col)] = 0
}

// Each implements Grid.
func (g *ArrGridRowMajor) Each(f func(row, col int, digit int, ok bool)) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v := g.cells[index(r, c)]
			f(r, c, int(v), v != 0)
		}
	}
}

// Copy implements Grid.
func (g *ArrGridRowMajor) Copy() Grid {
	cp := *g
	return &cp
}

// MarkGiven records that (row, col) was part of the original puzzle, for
// presentation layers (the CLI's colorized printer) that distinguish givens
// from cells the solver filled in. The core never reads this.
func (g *ArrGridRowMajor) MarkGiven(row, col int) {
	g.given[index(row, col)] = true
}

// IsGiven reports whether (row, col) was marked as an original given.
func (g *ArrGridRowMajor) IsGiven(row, col int) bool {
	return g.given[index(row, col)]
}

// SetGiven places digit at (row, col) and marks it as an original given in
// one step; used by the codec when reading a puzzle.
func (g *ArrGridRowMajor) SetGiven(row, col int, digit int) {
	g.Set(row, col, digit)
	g.MarkGiven(row, col)
}
