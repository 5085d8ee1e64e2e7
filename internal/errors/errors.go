// Package errors defines the pipeline's error taxonomy. Cleaning,
// joining and aggregation report problems as warnings and keep going;
// the only fatal class is a structural one, such as a required key
// column missing from a source table.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural failures.
var (
	// ErrMissingKeyColumn means a required key column is entirely
	// absent from an input table. Proceeding would produce silently
	// wrong joins, so the run fails.
	ErrMissingKeyColumn = errors.New("required key column missing")

	// ErrStageNotRun means a stage's output was requested before the
	// stage executed.
	ErrStageNotRun = errors.New("stage has not run")
)

// StageError wraps a failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage name.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// MissingKeyColumn builds the fatal structural error for a source
// table lacking its key column.
func MissingKeyColumn(source, column string) error {
	return fmt.Errorf("%s table: column %q: %w", source, column, ErrMissingKeyColumn)
}

// Is forwards to the standard library so callers can use one import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As forwards to the standard library so callers can use one import.
func As(err error, target any) bool {
	return errors.As(err, target)
}
