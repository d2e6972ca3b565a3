package grouping

import "github.com/brackwell/sudoku/internal/bitset"

type digitBucket struct {
	cells [maxUnitCells]bitset.Coord
	len   int
}

// HiddenSets detects hidden-k subsets within a single unit: digits whose
// candidate-cell sets coincide exactly.
type HiddenSets struct {
	buckets [9]digitBucket   // buckets[d] = cells in this unit whose domain contains digit d
	eq      [9]bitset.Bits9  // eq[d1] has bit d2 set iff buckets[d1] and buckets[d2] hold the same cells in the same order; rows of digits absent from the unit stay empty
}

// Init rebuilds the structure from one unit's (domain, cell) entries, in a
// single pass so every digit bucket observes the same cell order — the
// invariant HiddenSets.eq's pointwise comparison depends on.
func (h *HiddenSets) Init(entries []Entry) {
	for d := 0; d < 9; d++ {
		h.buckets[d].len = 0
	}

	for _, e := range entries {
		for d := 0; d < 9; d++ {
			if e.Domain.Has(d) {
				b := &h.buckets[d]
				b.cells[b.len] = e.Cell
				b.len++
			}
		}
	}

	for d1 := 0; d1 < 9; d1++ {
		var row bitset.Bits9
		if h.buckets[d1].len == 0 {
			h.eq[d1] = row
			continue
		}
		for d2 := 0; d2 < 9; d2++ {
			if bucketsEqual(&h.buckets[d1], &h.buckets[d2]) {
				row = row.Insert(d2)
			}
		}
		h.eq[d1] = row
	}
}

func bucketsEqual(a, b *digitBucket) bool {
	if a.len != b.len {
		return false
	}
	for i := 0; i < a.len; i++ {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// Find looks for the first digit d (ascending) whose candidate-cell set is
// shared by exactly size digits (including d itself) AND whose shared cell
// set is itself exactly size cells — a genuine hidden-size subset, as
// opposed to size digits that merely happen to co-occur across a larger
// cell set — and returns the mask of the digits sharing d's cell set and a
// newly allocated copy of that cell set.
func (h *HiddenSets) Find(size int) (digits bitset.Bits9, cells []bitset.Coord, ok bool) {
	for d := 0; d < 9; d++ {
		b := &h.buckets[d]
		if b.len == 0 {
			continue
		}
		if h.eq[d].CountOnes() == size && b.len == size {
			out := make([]bitset.Coord, b.len)
			copy(out, b.cells[:b.len])
			return h.eq[d], out, true
		}
	}
	return 0, nil, false
}
