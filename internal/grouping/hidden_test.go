package grouping

import (
	"testing"

	"github.com/brackwell/sudoku/internal/bitset"
)

func TestHiddenSetsFindsHiddenPair(t *testing.T) {
	entries := []Entry{
		{Cell: bitset.Coord{Row: 0, Col: 0}, Domain: domainAllowing(0, 1, 2, 3)},
		{Cell: bitset.Coord{Row: 0, Col: 1}, Domain: domainAllowing(0, 1, 4, 5)},
		{Cell: bitset.Coord{Row: 0, Col: 2}, Domain: domainAllowing(2, 3, 6, 7)},
	}

	var h HiddenSets
	h.Init(entries)

	digits, cells, ok := h.Find(2)
	if !ok {
		t.Fatal("expected a hidden pair on digits 0 and 1")
	}
	if digits.CountOnes() != 2 || !digits.Has(0) || !digits.Has(1) {
		t.Fatalf("digits = %v, want {0,1}", digits)
	}
	if len(cells) != 2 {
		t.Fatalf("cells = %v, want 2 cells", cells)
	}
	if cells[0] != entries[0].Cell || cells[1] != entries[1].Cell {
		t.Fatalf("cells = %v, want the two cells carrying digits 0 and 1", cells)
	}
}

func TestHiddenSetsNoneFoundWhenEveryDigitSpreadDifferently(t *testing.T) {
	entries := []Entry{
		{Cell: bitset.Coord{Row: 0, Col: 0}, Domain: domainAllowing(0, 1)},
		{Cell: bitset.Coord{Row: 0, Col: 1}, Domain: domainAllowing(1, 2)},
		{Cell: bitset.Coord{Row: 0, Col: 2}, Domain: domainAllowing(2, 0)},
	}

	var h HiddenSets
	h.Init(entries)

	if _, _, ok := h.Find(2); ok {
		t.Fatal("no two digits share an identical cell set here")
	}
}

func TestHiddenSetsSingleDigitConfinedToOneCellIsHiddenSingle(t *testing.T) {
	entries := []Entry{
		{Cell: bitset.Coord{Row: 0, Col: 0}, Domain: domainAllowing(0, 1, 2)},
		{Cell: bitset.Coord{Row: 0, Col: 1}, Domain: domainAllowing(1, 2)},
	}

	var h HiddenSets
	h.Init(entries)

	digits, cells, ok := h.Find(1)
	if !ok {
		t.Fatal("expected digit 0 to be a hidden single at (0,0)")
	}
	if digits.CountOnes() != 1 || !digits.Has(0) {
		t.Fatalf("digits = %v, want {0}", digits)
	}
	if len(cells) != 1 || cells[0] != entries[0].Cell {
		t.Fatalf("cells = %v, want just (0,0)", cells)
	}
}

func TestHiddenSetsIgnoresDigitsAbsentFromUnit(t *testing.T) {
	entries := []Entry{
		{Cell: bitset.Coord{Row: 0, Col: 0}, Domain: domainAllowing(0, 1)},
	}

	var h HiddenSets
	h.Init(entries)

	// digit 5 appears nowhere; it must never be reported as any kind of
	// hidden subset.
	for d := 0; d < 9; d++ {
		if d == 0 || d == 1 {
			continue
		}
		if h.eq[d].CountOnes() != 0 {
			t.Fatalf("digit %d unexpectedly has equivalence row %v", d, h.eq[d])
		}
	}
}

func TestHiddenSetsRejectsDigitPairSharingOversizedCellSet(t *testing.T) {
	// Digits 0 and 1 both appear in all three cells' domains, but a hidden
	// pair requires two digits confined to exactly two cells. Three cells
	// sharing a two-digit equivalence is not a hidden subset at all, and
	// must never be reported by Find(2).
	entries := []Entry{
		{Cell: bitset.Coord{Row: 0, Col: 0}, Domain: domainAllowing(0, 1, 2)},
		{Cell: bitset.Coord{Row: 0, Col: 1}, Domain: domainAllowing(0, 1, 3)},
		{Cell: bitset.Coord{Row: 0, Col: 2}, Domain: domainAllowing(0, 1, 4)},
	}

	var h HiddenSets
	h.Init(entries)

	if _, cells, ok := h.Find(2); ok {
		t.Fatalf("Find(2) reported a hidden pair over %d cells, want no match", len(cells))
	}
}

func TestHiddenSetsReInitClearsPreviousState(t *testing.T) {
	var h HiddenSets
	h.Init([]Entry{
		{Cell: bitset.Coord{Row: 0, Col: 0}, Domain: domainAllowing(0, 1)},
		{Cell: bitset.Coord{Row: 0, Col: 1}, Domain: domainAllowing(0, 1)},
	})
	if _, _, ok := h.Find(2); !ok {
		t.Fatal("expected a hidden pair before re-init")
	}

	h.Init([]Entry{
		{Cell: bitset.Coord{Row: 1, Col: 0}, Domain: domainAllowing(2, 3)},
	})
	if _, _, ok := h.Find(2); ok {
		t.Fatal("stale bucket state from the previous Init leaked through")
	}
}
