package importer

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/zrecon/internal/model"
)

// MissingColumnError reports required columns absent from a file's header row.
type MissingColumnError struct {
	Format  string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s", e.Format, strings.Join(e.Columns, ", "))
}

// DateFormatError reports a date cell that is neither dd.MM.yyyy text nor a
// spreadsheet serial number. Line is the 1-based line in the source file,
// counting the header.
type DateFormatError struct {
	Format string
	Line   int
	Value  string
	Err    error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("%s: line %d: unrecognised date %q", e.Format, e.Line, e.Value)
}

func (e *DateFormatError) Unwrap() error { return e.Err }

// UnknownFileFormatError reports a file name no dispatch rule matches.
type UnknownFileFormatError struct {
	Name string
}

func (e *UnknownFileFormatError) Error() string {
	return fmt.Sprintf("no format matches file %q", e.Name)
}

func requireColumns(format string, t model.Table, cols ...string) error {
	if missing := t.MissingColumns(cols...); len(missing) > 0 {
		return &MissingColumnError{Format: format, Columns: missing}
	}
	return nil
}
