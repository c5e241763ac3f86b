package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/cleared-dev/zrecon/internal/model"
)

// The PDF core fonts only cover Latin-1, so the PDF uses English titles.
var pdfColumns = []string{"Date", "Bank", "Z cash", "Z non-cash", "Returns", "Cash corr.", "Difference", "Result"}

// WritePDF renders rows as an A4 landscape table.
func WritePDF(w io.Writer, title string, rows []model.ReconciliationRow) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Dates: %d", len(rows)))
	pdf.Ln(8)

	const dateWidth, numWidth, height = 30.0, 33.0, 6.0
	pdf.SetFont("Arial", "B", 9)
	for i, c := range pdfColumns {
		width := numWidth
		if i == 0 {
			width = dateWidth
		}
		pdf.CellFormat(width, height, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i, v := range cells(row) {
			if i == 0 {
				pdf.CellFormat(dateWidth, height, v, "1", 0, "C", false, 0, "")
				continue
			}
			pdf.CellFormat(numWidth, height, v, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
