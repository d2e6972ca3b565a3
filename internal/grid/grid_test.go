package grid

import "testing"

func TestNewGridEmpty(t *testing.T) {
	g := New()
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if _, ok := g.Get(r, c); ok {
				t.Fatalf("new grid has a filled cell at (%d,%d)", r, c)
			}
		}
	}
}

func TestSetGetClear(t *testing.T) {
	g := New()
	g.Set(0, 0, 5)

	if v, ok := g.Get(0, 0); !ok || v != 5 {
		t.Fatalf("Get(0,0) = (%d,%v), want (5,true)", v, ok)
	}

	g.Clear(0, 0)
	if _, ok := g.Get(0, 0); ok {
		t.Fatal("Clear(0,0) left the cell filled")
	}
}

func TestSetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Set with digit 0 did not panic")
		}
	}()
	New().Set(0, 0, 0)
}

func TestCopyIsIndependent(t *testing.T) {
	g := New()
	g.Set(1, 1, 3)

	cp := g.Copy()
	cp.Set(1, 1, 7)

	if v, _ := g.Get(1, 1); v != 3 {
		t.Fatalf("original grid mutated through the copy: Get(1,1) = %d", v)
	}
	if v, _ := cp.Get(1, 1); v != 7 {
		t.Fatalf("Get(1,1) on copy = %d, want 7", v)
	}
}

func TestEachRowMajorOrder(t *testing.T) {
	g := New()
	g.Set(0, 1, 2)
	g.Set(8, 8, 9)

	var seen []int
	g.Each(func(row, col, digit int, ok bool) {
		seen = append(seen, row*9+col)
	})

	if len(seen) != CellCount {
		t.Fatalf("Each visited %d cells, want %d", len(seen), CellCount)
	}
	for i, idx := range seen {
		if i != idx {
			t.Fatalf("Each not in row-major order: position %d saw index %d", i, idx)
		}
	}
}

func TestGivenTracking(t *testing.T) {
	g := New()
	g.SetGiven(2, 2, 4)

	if !g.IsGiven(2, 2) {
		t.Fatal("SetGiven did not mark the cell as given")
	}
	if g.IsGiven(3, 3) {
		t.Fatal("unrelated cell reported as given")
	}

	cp := g.Copy().(*ArrGridRowMajor)
	if !cp.IsGiven(2, 2) {
		t.Fatal("Copy() did not preserve the given mask")
	}
}
