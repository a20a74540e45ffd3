package types

import (
	"fmt"
	"strings"
)

// DataLoadError reports input that could not be read or decoded.
// Line and Column are zero when they do not apply.
type DataLoadError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("data load error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

// Unwrap implements the errors.Unwrap interface
func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError creates a DataLoadError for a whole file.
func NewDataLoadError(path string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Err: err}
}

// ExportError reports an artifact that could not be rendered or written.
type ExportError struct {
	Artifact string // e.g. "summary table", "status pie"
	Path     string
	Err      error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export %s: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("export %s to %s: %v", e.Artifact, e.Path, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError
func NewExportError(artifact, path string, err error) *ExportError {
	return &ExportError{Artifact: artifact, Path: path, Err: err}
}
