package epicreport

import (
	"errors"
	"fmt"

	"github.com/ethereum-optimism/infra/epic-report/exitcodes"
	"github.com/ethereum-optimism/infra/epic-report/types"
)

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include configuration errors or an unwritable metrics file.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// IsDataLoadError checks if the error is or wraps a types.DataLoadError
func IsDataLoadError(err error) bool {
	var loadErr *types.DataLoadError
	return err != nil && errors.As(err, &loadErr)
}

// IsExportError checks if the error is or wraps a types.ExportError
func IsExportError(err error) bool {
	var exportErr *types.ExportError
	return err != nil && errors.As(err, &exportErr)
}

// ExitCode maps an error returned by the report to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case IsDataLoadError(err):
		return exitcodes.DataLoadErr
	default:
		return exitcodes.RuntimeErr
	}
}
