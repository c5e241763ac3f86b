// Package tabular decodes input files into header-keyed rows.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/zrecon/internal/model"
)

// ErrUnsupportedFile is returned for extensions other than .csv and .xlsx.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Options control how CSV files are decoded. XLSX files ignore them.
type Options struct {
	Encoding  string // "utf-8" (default) or "windows-1251"
	Delimiter string // single character, default ","
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read opens path and decodes it by extension.
func Read(path string, opts Options) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, opts)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return model.Table{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFile)
	}
}

// ReadCSV decodes a CSV with a header row. Empty lines are skipped, short
// rows leave their trailing columns absent, and every cell is text.
func ReadCSV(r io.Reader, opts Options) (model.Table, error) {
	decoded, err := decode(r, opts.Encoding)
	if err != nil {
		return model.Table{}, err
	}

	cr := csv.NewReader(decoded)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	if opts.Delimiter != "" {
		d := []rune(opts.Delimiter)
		if len(d) != 1 {
			return model.Table{}, fmt.Errorf("delimiter %q must be a single character", opts.Delimiter)
		}
		cr.Comma = d[0]
	}

	records, err := cr.ReadAll()
	if err != nil {
		return model.Table{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return model.Table{}, nil
	}

	headers := trimAll(records[0])
	t := model.Table{Headers: headers}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make(model.RawRow, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = model.Text(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		return bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)), nil
	case "windows-1251", "cp1251":
		return transform.NewReader(r, charmap.Windows1251.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// ReadXLSX decodes the first sheet of a workbook. Cells keep their raw stored
// value; non-string cells holding a number are marked Numeric so dates
// stored as serials can be told apart from text.
func ReadXLSX(r io.Reader) (model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Table{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Table{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return model.Table{}, nil
	}

	headers := trimAll(rows[0])
	t := model.Table{Headers: headers}
	for ri, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		row := make(model.RawRow, len(headers))
		for ci, h := range headers {
			if ci >= len(rec) || rec[ci] == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return model.Table{}, fmt.Errorf("cell name: %w", err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return model.Table{}, fmt.Errorf("cell %s type: %w", cell, err)
			}
			row[h] = xlsxCell(rec[ci], typ)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func xlsxCell(v string, typ excelize.CellType) model.Cell {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return model.Text(v)
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return model.Number(v)
	}
	return model.Text(v)
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
