package engine

import (
	"errors"
	"testing"

	"github.com/brackwell/sudoku/internal/cancel"
	"github.com/brackwell/sudoku/internal/constraints"
	"github.com/brackwell/sudoku/internal/grid"
	"github.com/brackwell/sudoku/internal/solvererr"
)

// runStep wires a fresh Stack/Diff around g and cs and invokes Step once at
// the root, the same way the public solver entry point does (minus the
// ConstraintsViolated translation, which is the caller's job).
func runStep(g grid.Grid, cs *constraints.Constraints, flag cancel.Flag) (*Diff, int, error) {
	return runStepWithStats(g, cs, flag, nil)
}

func runStepWithStats(g grid.Grid, cs *constraints.Constraints, flag cancel.Flag, stats *Stats) (*Diff, int, error) {
	rl := cancel.NewRateLimited(flag, 1024)
	stack := NewStack()
	diff := NewDiff()

	n, err := stack.Tail().With(func(frame *StackFrame, stackTail StackTail) (int, error) {
		return diff.Tail().With(nil, nil, g, cs, func(g grid.Grid, cs *constraints.Constraints, diffTail DiffTail) (int, error) {
			return Step(rl, stats, frame, g, cs, stackTail, diffTail)
		})
	})
	return diff, n, err
}

func asciiToGrid(t *testing.T, rows []string) *grid.ArrGridRowMajor {
	t.Helper()
	g := grid.New()
	for r, row := range rows {
		if len(row) != 9 {
			t.Fatalf("row %d has length %d, want 9", r, len(row))
		}
		for c, ch := range row {
			if ch == '_' {
				continue
			}
			g.Set(r, c, int(ch-'0'))
		}
	}
	return g
}

func TestStepSolvesClassicPuzzle(t *testing.T) {
	g := asciiToGrid(t, []string{
		"53__7____",
		"6__195___",
		"_98____6_",
		"8___6___3",
		"4__8_3__1",
		"7___2___6",
		"_6____28_",
		"___419__5",
		"____8__79",
	})
	cs := constraints.FromGrid(g)

	diff, n, err := runStep(g, cs, cancel.NeverCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range diff.Entries(n) {
		g.Set(e.Cell.Row, e.Cell.Col, constraints.ToDigit(e.Digit))
	}

	want := []string{
		"534678912",
		"672195348",
		"198342567",
		"859761423",
		"426853791",
		"713924856",
		"961537284",
		"287419635",
		"345286179",
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			digit, ok := g.Get(r, c)
			if !ok {
				t.Fatalf("cell (%d,%d) left empty", r, c)
			}
			wantDigit := int(want[r][c] - '0')
			if digit != wantDigit {
				t.Fatalf("cell (%d,%d) = %d, want %d", r, c, digit, wantDigit)
			}
		}
	}
}

func TestStepInfeasiblePuzzle(t *testing.T) {
	g := asciiToGrid(t, []string{
		"_271_5___",
		"15__34___",
		"936___7__",
		"_8_72_456",
		"____4_1__",
		"__1____3_",
		"___913_4_",
		"___456___",
		"_4_8_____",
	})
	cs := constraints.FromGrid(g)

	_, _, err := runStep(g, cs, cancel.NeverCancelled)
	if !errors.Is(err, solvererr.ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestStepEmptyGridCanonicalCompletion(t *testing.T) {
	g := grid.New()
	cs := constraints.New()

	diff, n, err := runStep(g, cs, cancel.NeverCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 81 {
		t.Fatalf("placed %d cells, want 81", n)
	}
	for _, e := range diff.Entries(n) {
		g.Set(e.Cell.Row, e.Cell.Col, constraints.ToDigit(e.Digit))
	}

	want := []string{
		"123456789",
		"456789123",
		"789123456",
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 9; c++ {
			digit, _ := g.Get(r, c)
			if digit != int(want[r][c]-'0') {
				t.Fatalf("row %d = unexpected at col %d: got %d", r, c, digit)
			}
		}
	}
}

func TestStepAlreadyCancelled(t *testing.T) {
	g := asciiToGrid(t, []string{
		"53__7____",
		"6__195___",
		"_98____6_",
		"8___6___3",
		"4__8_3__1",
		"7___2___6",
		"_6____28_",
		"___419__5",
		"____8__79",
	})
	cs := constraints.FromGrid(g)

	_, _, err := runStep(g, cs, cancel.AlwaysCancelled)
	if !errors.Is(err, solvererr.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestStepTracksStats(t *testing.T) {
	g := asciiToGrid(t, []string{
		"53__7____",
		"6__195___",
		"_98____6_",
		"8___6___3",
		"4__8_3__1",
		"7___2___6",
		"_6____28_",
		"___419__5",
		"____8__79",
	})
	cs := constraints.FromGrid(g)

	var stats Stats
	_, _, err := runStepWithStats(g, cs, cancel.NeverCancelled, &stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Nodes == 0 {
		t.Fatal("Nodes = 0, want at least the root node counted")
	}
}

func TestStepTracksBacktracksOnInfeasiblePuzzle(t *testing.T) {
	g := asciiToGrid(t, []string{
		"_271_5___",
		"15__34___",
		"936___7__",
		"_8_72_456",
		"____4_1__",
		"__1____3_",
		"___913_4_",
		"___456___",
		"_4_8_____",
	})
	cs := constraints.FromGrid(g)

	var stats Stats
	_, _, err := runStepWithStats(g, cs, cancel.NeverCancelled, &stats)
	if !errors.Is(err, solvererr.ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
	if stats.Backtracks == 0 {
		t.Fatal("Backtracks = 0, want at least one dead end counted")
	}
}

func TestStepNearEmptySingleClueSolvesFast(t *testing.T) {
	rows := make([]string, 9)
	for i := range rows {
		rows[i] = "_________"
	}
	rows[8] = "8________"
	g := asciiToGrid(t, rows)
	cs := constraints.FromGrid(g)

	_, n, err := runStep(g, cs, cancel.NeverCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 80 {
		t.Fatalf("placed %d cells, want 80", n)
	}
}
