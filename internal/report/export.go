package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownExport is returned for export paths with an unsupported extension.
var ErrUnknownExport = errors.New("unknown export format")

// DefaultPDFTitle heads PDF exports.
const DefaultPDFTitle = "Z-report vs bank reconciliation"

// Export writes wb to path, choosing the format by extension: .csv (merged
// rows only), .xlsx or .pdf.
func Export(path string, wb Workbook) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".xlsx", ".pdf":
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownExport)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export: %w", cerr)
		}
	}()

	switch ext {
	case ".csv":
		return WriteCSV(f, wb.Rows)
	case ".xlsx":
		return WriteXLSX(f, wb)
	default:
		return WritePDF(f, DefaultPDFTitle, wb.Rows)
	}
}
