// Package lcerrors defines the error types returned by table loading and
// lightcurve computations. Every type names the failing file, column or band
// verbatim so wrapping tools can report it as-is.
package lcerrors

import (
	"fmt"
	"strings"
)

// FileError reports a dataset file that could not be opened or read
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot read file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed dataset file
type ParseError struct {
	Path   string // file being parsed
	Line   int    // 1-based line the offending record starts on (0 if unknown)
	Column string // column name (empty if not column specific)
	Value  string // offending raw value (may be empty)
	Reason string // human-readable explanation
	Err    error  // underlying parser error (may be nil)
}

func (e *ParseError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("parse error in %s", e.Path))

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column %s", e.Column))
	}

	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ColumnNotFoundError is returned when a referenced column does not exist
type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	if e.TableName == "" {
		return fmt.Sprintf("column %s not found", e.ColumnName)
	}
	return fmt.Sprintf("column %s not found in table %s", e.ColumnName, e.TableName)
}

// ColumnTypeError is returned when a numeric operation targets a non-numeric column
type ColumnTypeError struct {
	TableName  string
	ColumnName string
	Type       string // actual column type
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %s in table %s is %s, expected a numeric column", e.ColumnName, e.TableName, e.Type)
}

// BandNotFoundError is returned when a requested band has no table
type BandNotFoundError struct {
	Band string
}

func (e *BandNotFoundError) Error() string {
	return fmt.Sprintf("band %s not found", e.Band)
}

// ValueOutOfRangeError is returned when a magnitude column holds a value
// outside the accepted bound
type ValueOutOfRangeError struct {
	Column   string
	RowIndex int // 0-based row of the first offending value
	Value    float64
	Limit    float64
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("%s contains values with abs() larger than %g (value=%g at row %d)",
		e.Column, e.Limit, e.Value, e.RowIndex)
}
