// Package constraints tracks which digits are already used in every row,
// column, and box, giving O(1) lookup of the candidate domain for any cell.
package constraints

import (
	"github.com/brackwell/sudoku/internal/bitset"
	"github.com/brackwell/sudoku/internal/grid"
)

// Constraints holds the three 9x9 used-digit matrices (rows, columns,
// boxes). Digit indices here are 0..8; callers at the grid boundary (which
// stores 1..9) convert with ToIndex/ToDigit.
type Constraints struct {
	rows, cols, boxes bitset.BoolMatrix9x9
}

// ToIndex converts a grid digit (1..9) to a bitset index (0..8).
func ToIndex(digit int) int { return digit - 1 }

// ToDigit converts a bitset index (0..8) to a grid digit (1..9).
func ToDigit(index int) int { return index + 1 }

// New returns an empty Constraints with nothing marked as used.
func New() *Constraints {
	return &Constraints{}
}

// FromGrid builds a Constraints by scanning every placed cell in g.
func FromGrid(g grid.Grid) *Constraints {
	cs := New()
	g.Each(func(row, col, digit int, ok bool) {
		if ok {
			cs.Set(row, col, ToIndex(digit))
		}
	})
	return cs
}

// Set marks digit d (0..8) as used in the row, column, and box of (r, c).
func (cs *Constraints) Set(r, c, d int) {
	cs.rows.Set(r, d)
	cs.cols.Set(c, d)
	cs.boxes.Set((bitset.Coord{Row: r, Col: c}).Box(), d)
}

// Unset reverses Set.
func (cs *Constraints) Unset(r, c, d int) {
	cs.rows.Unset(r, d)
	cs.cols.Unset(c, d)
	cs.boxes.Unset((bitset.Coord{Row: r, Col: c}).Box(), d)
}

// SetMany applies Set to every (cell, digit) pair.
func (cs *Constraints) SetMany(cells []bitset.Coord, digits []int) {
	for i, cell := range cells {
		cs.Set(cell.Row, cell.Col, digits[i])
	}
}

// UnsetMany applies Unset to every (cell, digit) pair.
func (cs *Constraints) UnsetMany(cells []bitset.Coord, digits []int) {
	for i, cell := range cells {
		cs.Unset(cell.Row, cell.Col, digits[i])
	}
}

// Domain returns the set of digits already used in any of the three units
// containing (r, c); the core treats the zero bits of this set as the
// candidates for that cell.
func (cs *Constraints) Domain(r, c int) bitset.Domain {
	box := (bitset.Coord{Row: r, Col: c}).Box()
	used := cs.rows.Row(r).Union(cs.cols.Row(c)).Union(cs.boxes.Row(box))
	return bitset.NewDomain(used)
}
