package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brackwell/sudoku"
	"github.com/brackwell/sudoku/internal/codec"
)

var benchRuns int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Repeatedly solve the bundled puzzles and report timing",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchRuns, "runs", "n", 20, "number of times to solve each puzzle")
}

func runBench(cmd *cobra.Command, args []string) error {
	for _, p := range demoPuzzles {
		var total time.Duration
		var placements int
		var stats sudoku.Stats

		for i := 0; i < benchRuns; i++ {
			g, err := codec.ReadString(p.input)
			if err != nil {
				return fmt.Errorf("bench %q: %w", p.name, err)
			}

			start := time.Now()
			diffs, runStats, err := sudoku.SolveWithStats(sudoku.NeverCancelled, g)
			total += time.Since(start)
			if err == nil {
				placements = len(diffs)
			}
			stats.Nodes += runStats.Nodes
			stats.Backtracks += runStats.Backtracks
		}

		log.WithFields(logrus.Fields{
			"puzzle":             p.name,
			"runs":               benchRuns,
			"avg":                total / time.Duration(benchRuns),
			"placements":         placements,
			"nodes_per_run":      stats.Nodes / uint64(benchRuns),
			"backtracks_per_run": stats.Backtracks / uint64(benchRuns),
		}).Info("bench result")
		fmt.Printf("%-12s avg=%-12s placements=%d nodes/run=%d backtracks/run=%d\n",
			p.name, total/time.Duration(benchRuns), placements,
			stats.Nodes/uint64(benchRuns), stats.Backtracks/uint64(benchRuns))
	}
	return nil
}
