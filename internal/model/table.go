package model

import "strings"

// Cell is one raw spreadsheet or CSV value. Numeric is set when the source
// stored the value as a number (spreadsheets only); CSV cells are always text.
type Cell struct {
	Value   string
	Numeric bool
}

// Text returns a text cell.
func Text(s string) Cell { return Cell{Value: s} }

// Number returns a numeric cell.
func Number(s string) Cell { return Cell{Value: s, Numeric: true} }

// Empty reports whether the cell carries no value.
func (c Cell) Empty() bool {
	return strings.TrimSpace(c.Value) == ""
}

// RawRow maps a column header to its cell. A missing key means the cell is absent.
type RawRow map[string]Cell

// Get returns the cell for column, or the zero Cell.
func (r RawRow) Get(column string) Cell {
	return r[column]
}

// Table is the decoded content of one input file: the header row and the
// data rows keyed by header.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// HasColumn reports whether the header row contains name.
func (t Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the names not present in the header row, in the
// order given.
func (t Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}
