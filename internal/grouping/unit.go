// Package grouping implements the two in-unit inference structures the
// search engine consults before falling back to branching: GroupedByUnit
// (naked-subset detection) and HiddenSets (hidden-subset detection). Both
// keep their buckets in a single recursion frame's pre-allocated scratch and
// reuse them; the one allocation is the cell slice that FindNakedRun and
// HiddenSets.Find make for each subset they report.
package grouping

import "github.com/brackwell/sudoku/internal/bitset"

// maxUnitCells is the number of cells in any row, column, or box.
const maxUnitCells = 9

// Entry pairs an unassigned cell with its current domain.
type Entry struct {
	Cell   bitset.Coord
	Domain bitset.Domain
}

// Offsets of the row, column, and box buckets among the 27 units.
const (
	rowUnits = 0
	colUnits = 9
	boxUnits = 18
)

type unitBucket struct {
	entries [maxUnitCells]Entry
	len     int
}

func (b *unitBucket) add(e Entry) {
	b.entries[b.len] = e
	b.len++
}

// insertion sort: buckets never hold more than 9 elements, so this beats any
// allocation a general-purpose sort would cost, and duplicate domains (which
// are common here) make it close to linear in practice.
func (b *unitBucket) sort() {
	for i := 1; i < b.len; i++ {
		e := b.entries[i]
		j := i - 1
		for j >= 0 && less(e, b.entries[j]) {
			b.entries[j+1] = b.entries[j]
			j--
		}
		b.entries[j+1] = e
	}
}

func less(a, b Entry) bool {
	if a.Domain.Size() != b.Domain.Size() {
		return a.Domain.Size() < b.Domain.Size()
	}
	if a.Domain.Bits() != b.Domain.Bits() {
		return a.Domain.Bits() < b.Domain.Bits()
	}
	return a.Cell.RowMajor() < b.Cell.RowMajor()
}

// GroupedByUnit groups the currently-unassigned cells of a grid by the three
// unit types (9 rows + 9 columns + 9 boxes), each bucket sorted by
// (domain size, domain bits, cell) so that a naked-k subset shows up as a
// run of k consecutive entries sharing one k-sized domain.
type GroupedByUnit struct {
	units [27]unitBucket
}

// Reset clears every bucket so the frame can be reused for a new recursion
// level.
func (g *GroupedByUnit) Reset() {
	for i := range g.units {
		g.units[i].len = 0
	}
}

// Add records one unassigned cell and its domain into its row, column, and
// box buckets.
func (g *GroupedByUnit) Add(cell bitset.Coord, domain bitset.Domain) {
	e := Entry{Cell: cell, Domain: domain}
	g.units[rowUnits+cell.Row].add(e)
	g.units[colUnits+cell.Col].add(e)
	g.units[boxUnits+cell.Box()].add(e)
}

// SortAll sorts every populated bucket. Call once after every cell has been
// Add-ed and before scanning for runs.
func (g *GroupedByUnit) SortAll() {
	for i := range g.units {
		if g.units[i].len > 1 {
			g.units[i].sort()
		}
	}
}

// Scan visits every maximal run of consecutive entries sharing one domain,
// across all 27 units, calling f for each. It returns the total number of
// runs visited.
func (g *GroupedByUnit) Scan(f func(run []Entry)) int {
	runs := 0
	for i := range g.units {
		b := &g.units[i]
		start := 0
		for start < b.len {
			end := start + 1
			for end < b.len && b.entries[end].Domain.Bits() == b.entries[start].Domain.Bits() {
				end++
			}
			f(b.entries[start:end])
			runs++
			start = end
		}
	}
	return runs
}

// FindNakedRun scans every unit for the first run of exactly size entries
// whose shared domain also has exactly size candidates — a naked-size
// subset. It returns the run's cells and the shared domain.
func (g *GroupedByUnit) FindNakedRun(size int) (cells []bitset.Coord, domain bitset.Domain, ok bool) {
	for i := range g.units {
		b := &g.units[i]
		start := 0
		for start < b.len {
			end := start + 1
			for end < b.len && b.entries[end].Domain.Bits() == b.entries[start].Domain.Bits() {
				end++
			}
			run := b.entries[start:end]
			if len(run) == size && run[0].Domain.Size() == size {
				out := make([]bitset.Coord, size)
				for j, e := range run {
					out[j] = e.Cell
				}
				return out, run[0].Domain, true
			}
			start = end
		}
	}
	return nil, bitset.Domain{}, false
}

// HasOverconstrainedUnit reports whether any unit contains a run whose
// length exceeds its shared domain's size — more cells sharing a candidate
// set than there are candidates to go around, which is only possible when
// the grid is unsolvable from this point on.
func (g *GroupedByUnit) HasOverconstrainedUnit() bool {
	found := false
	g.Scan(func(run []Entry) {
		if len(run) > run[0].Domain.Size() {
			found = true
		}
	})
	return found
}

// Units returns the populated entries of unit index 0..26 (0..8 rows,
// 9..17 columns, 18..26 boxes), in each bucket's current order: the order
// entries were Add-ed in, or the sorted order once SortAll has run.
// HiddenSets.Init reads a unit's entries in a single pass, so every digit
// bucket it builds sees the same cell order either way.
func (g *GroupedByUnit) Units() [27][]Entry {
	var out [27][]Entry
	for i := range g.units {
		out[i] = g.units[i].entries[:g.units[i].len]
	}
	return out
}
