package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brackwell/sudoku"
	"github.com/brackwell/sudoku/internal/cancel"
	"github.com/brackwell/sudoku/internal/codec"
	"github.com/brackwell/sudoku/internal/status"
)

var (
	solveFile    string
	solveTimeout time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a puzzle read from a file or stdin",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "read the puzzle from this file instead of stdin")
	solveCmd.Flags().DurationVarP(&solveTimeout, "timeout", "t", 0, "cancel the search after this long (0 disables the watchdog)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	g, err := readPuzzle(solveFile)
	if err != nil {
		return err
	}

	st, statusErr := status.Check(g)
	log.WithField("status", st).Debug("input classified")
	if st == status.Violated {
		printGrid(g, false)
		return statusErr
	}

	flag := armCancellation(solveTimeout)

	start := time.Now()
	diffs, err := sudoku.Solve(flag, g)
	log.WithFields(logrus.Fields{
		"elapsed":     time.Since(start),
		"placements":  len(diffs),
		"had_timeout": solveTimeout > 0,
	}).Debug("solve finished")

	if err != nil {
		return err
	}

	sudoku.Apply(g, diffs)
	color.HiWhite("Solution:")
	printGrid(g, true)
	return nil
}

// armCancellation starts a watchdog goroutine that cancels flag after
// timeout elapses. A zero timeout returns a flag that is never cancelled.
func armCancellation(timeout time.Duration) sudoku.Flag {
	if timeout <= 0 {
		return sudoku.NeverCancelled
	}
	flag := &cancel.AtomicFlag{}
	go func() {
		<-time.After(timeout)
		flag.Cancel()
	}()
	return flag
}

func readPuzzle(path string) (*sudoku.ArrGridRowMajor, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return codec.Read(f)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Println("Enter the puzzle as 9 lines of 9 characters, '_' for empty cells:")
	}
	return codec.Read(os.Stdin)
}

// printGrid renders g with givens and solver-filled cells in distinct
// colors, the way the teacher's printer distinguishes locked from filled
// values.
func printGrid(g *sudoku.ArrGridRowMajor, colorize bool) {
	const (
		borderTop    = "┌───┬───┬───╥───┬───┬───╥───┬───┬───┐"
		borderBot    = "└───┴───┴───╨───┴───┴───╨───┴───┴───┘"
		dividerMinor = "├───┼───┼───╫───┼───┼───╫───┼───┼───┤"
		dividerMajor = "╞═══╪═══╪═══╬═══╪═══╪═══╬═══╪═══╪═══╡"
	)
	borderColor := color.New(color.FgHiWhite)
	givenColor := color.New(color.Bold, color.FgHiWhite)
	filledColor := color.New(color.Bold, color.FgHiCyan)

	printBorder := func(s string) {
		if colorize {
			borderColor.Println(s)
		} else {
			fmt.Println(s)
		}
	}

	printBorder(borderTop)
	for r := 0; r < 9; r++ {
		if r != 0 {
			if r%3 == 0 {
				printBorder(dividerMajor)
			} else {
				printBorder(dividerMinor)
			}
		}
		for c := 0; c < 9; c++ {
			switch {
			case c == 0:
				fmt.Print("│")
			case c%3 == 0:
				fmt.Print("║")
			default:
				fmt.Print("│")
			}
			digit, ok := g.Get(r, c)
			cell := " "
			if ok {
				cell = fmt.Sprintf("%d", digit)
			}
			switch {
			case !colorize || !ok:
				fmt.Printf(" %s ", cell)
			case g.IsGiven(r, c):
				givenColor.Printf(" %s ", cell)
			default:
				filledColor.Printf(" %s ", cell)
			}
		}
		fmt.Println("│")
	}
	printBorder(borderBot)
}
