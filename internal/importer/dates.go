package importer

import (
	"strings"

	"github.com/cleared-dev/zrecon/internal/model"
)

// datePart returns the text before the first space ("02.01.2025 14:33" ->
// "02.01.2025").
func datePart(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// cellDate normalizes a date cell. Numeric cells are spreadsheet serials; text
// must be strict dd.MM.yyyy, optionally cut at the first space when
// splitTime is set.
func cellDate(format string, line int, c model.Cell, splitTime bool) (model.Date, error) {
	if c.Numeric {
		d, err := model.ParseSerial(strings.TrimSpace(c.Value))
		if err != nil {
			return model.Date{}, &DateFormatError{Format: format, Line: line, Value: c.Value, Err: err}
		}
		return d, nil
	}

	text := strings.TrimSpace(c.Value)
	if splitTime {
		text = datePart(text)
	}
	d, err := model.ParseDate(text)
	if err != nil {
		return model.Date{}, &DateFormatError{Format: format, Line: line, Value: c.Value, Err: err}
	}
	return d, nil
}

// lineOf maps a data row index to its line in the source file.
func lineOf(i int) int { return i + 2 }
