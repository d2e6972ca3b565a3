package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brackwell/sudoku"
	"github.com/brackwell/sudoku/internal/codec"
)

// demoPuzzles holds a solvable classic puzzle, an infeasible puzzle, and the
// empty grid.
var demoPuzzles = []struct {
	name  string
	input string
}{
	{
		name: "classic",
		input: "53__7____\n" +
			"6__195___\n" +
			"_98____6_\n" +
			"8___6___3\n" +
			"4__8_3__1\n" +
			"7___2___6\n" +
			"_6____28_\n" +
			"___419__5\n" +
			"____8__79",
	},
	{
		name: "infeasible",
		input: "_271_5___\n" +
			"15__34___\n" +
			"936___7__\n" +
			"_8_72_456\n" +
			"____4_1__\n" +
			"__1____3_\n" +
			"___913_4_\n" +
			"___456___\n" +
			"_4_8_____",
	},
	{
		name: "empty",
		input: "_________\n_________\n_________\n_________\n" +
			"_________\n_________\n_________\n_________\n_________",
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a battery of sample puzzles against the solver",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	for _, p := range demoPuzzles {
		g, err := codec.ReadString(p.input)
		if err != nil {
			return fmt.Errorf("demo %q: %w", p.name, err)
		}

		color.HiWhite("--- %s ---", p.name)
		diffs, err := sudoku.Solve(sudoku.NeverCancelled, g)
		if err != nil {
			fmt.Printf("%v\n", err)
			continue
		}
		sudoku.Apply(g, diffs)
		printGrid(g, true)
	}
	return nil
}
