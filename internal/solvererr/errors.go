// Package solvererr defines the sentinel errors the search engine and its
// callers classify results by.
package solvererr

import "errors"

var (
	// ErrInfeasible means the engine exhausted every candidate at some point
	// in the search and found no completion.
	ErrInfeasible = errors.New("sudoku: no solution exists for this grid")

	// ErrCancelled means the search stopped because its cancellation flag
	// tripped before it reached a verdict.
	ErrCancelled = errors.New("sudoku: solve cancelled")

	// ErrConstraintsViolated means the input grid itself already breaks a
	// row, column, or box constraint, so no search was meaningful.
	ErrConstraintsViolated = errors.New("sudoku: input grid violates row, column, or box constraints")
)
