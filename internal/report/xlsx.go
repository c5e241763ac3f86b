package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/zrecon/internal/model"
)

// Sheet names of the exported workbook.
const (
	SheetSummary     = "Підсумок"
	SheetBank        = "Банк"
	SheetSettlements = "Z-звіти"
)

// Workbook is everything the spreadsheet export contains.
type Workbook struct {
	Rows        []model.ReconciliationRow
	Deposits    []model.DepositEntry
	Settlements []model.SettlementEntry
}

// WriteXLSX writes the merged table and both aggregated series as sheets.
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetSummary)
	for _, name := range []string{SheetBank, SheetSettlements} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	summary := make([][]any, 0, len(wb.Rows))
	for _, r := range wb.Rows {
		summary = append(summary, []any{
			r.Date.String(),
			r.BankSum.InexactFloat64(),
			r.ZSumCash.InexactFloat64(),
			r.ZSumNonCash.InexactFloat64(),
			r.ZRetSum.InexactFloat64(),
			r.CashCorrection.InexactFloat64(),
			r.Difference.InexactFloat64(),
			r.Result.InexactFloat64(),
		})
	}
	if err := writeSheet(f, SheetSummary, columns, summary, money); err != nil {
		return err
	}

	bank := make([][]any, 0, len(wb.Deposits))
	for _, d := range wb.Deposits {
		bank = append(bank, []any{d.Date.String(), d.Amount.InexactFloat64()})
	}
	if err := writeSheet(f, SheetBank, []string{"Дата", "Сума"}, bank, money); err != nil {
		return err
	}

	z := make([][]any, 0, len(wb.Settlements))
	for _, s := range wb.Settlements {
		z = append(z, []any{s.Date.String(), s.Cash.InexactFloat64(), s.NonCash.InexactFloat64(), s.Returns.InexactFloat64()})
	}
	if err := writeSheet(f, SheetSettlements, []string{"Дата", "Готівка", "Безготівка", "Повернення"}, z, money); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, moneyStyle int) error {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
		return fmt.Errorf("%s widths: %w", sheet, err)
	}
	if len(rows) > 0 && len(header) > 1 {
		end := fmt.Sprintf("%s%d", last, len(rows)+1)
		if err := f.SetCellStyle(sheet, "B2", end, moneyStyle); err != nil {
			return fmt.Errorf("%s style: %w", sheet, err)
		}
	}
	return nil
}
