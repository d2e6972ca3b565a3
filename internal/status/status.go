// Package status classifies a grid as complete, incomplete, or
// constraint-violating — the "status checker" collaborator the core
// consumes at its boundary but never calls internally.
package status

import (
	"fmt"

	"github.com/brackwell/sudoku/internal/bitset"
	"github.com/brackwell/sudoku/internal/grid"
)

// Status is the classification of a grid.
type Status int

const (
	// Incomplete means the grid has at least one empty cell and no unit
	// contains a duplicate digit.
	Incomplete Status = iota
	// Complete means every cell is filled and no unit contains a duplicate.
	Complete
	// Violated means some row, column, or box holds the same digit twice.
	Violated
)

func (s Status) String() string {
	switch s {
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	case Violated:
		return "violated"
	default:
		return "unknown"
	}
}

// DuplicateError reports the first duplicate digit found in a unit.
type DuplicateError struct {
	Unit  string
	Index int
	Digit int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("status: digit %d appears twice in %s %d", e.Digit, e.Unit, e.Index)
}

// Check classifies g, returning a *DuplicateError alongside Violated that
// names the first conflict met while scanning the cells in row-major order;
// at each cell the row is checked before the column, and the column before
// the box.
func Check(g grid.Grid) (Status, error) {
	var rows, cols, boxes [9]bitset.Bits9
	complete := true

	var dup *DuplicateError
	g.Each(func(row, col, digit int, ok bool) {
		if !ok {
			complete = false
			return
		}
		if dup != nil {
			return
		}
		idx := digit - 1
		box := (bitset.Coord{Row: row, Col: col}).Box()

		if rows[row].Has(idx) {
			dup = &DuplicateError{Unit: "row", Index: row, Digit: digit}
			return
		}
		if cols[col].Has(idx) {
			dup = &DuplicateError{Unit: "column", Index: col, Digit: digit}
			return
		}
		if boxes[box].Has(idx) {
			dup = &DuplicateError{Unit: "box", Index: box, Digit: digit}
			return
		}
		rows[row] = rows[row].Insert(idx)
		cols[col] = cols[col].Insert(idx)
		boxes[box] = boxes[box].Insert(idx)
	})

	if dup != nil {
		return Violated, dup
	}
	if complete {
		return Complete, nil
	}
	return Incomplete, nil
}
