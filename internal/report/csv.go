package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/zrecon/internal/model"
)

// Header is the CSV header for exported reconciliation rows.
const Header = "date,bank_sum,z_cash,z_non_cash,z_returns,cash_correction,difference,result"

const (
	numFields    = 8
	colDate      = 0
	colBankSum   = 1
	colCash      = 2
	colNonCash   = 3
	colReturns   = 4
	colCorrected = 5
	colDiff      = 6
	colResult    = 7
)

// WriteCSV writes rows (including header).
func WriteCSV(w io.Writer, rows []model.ReconciliationRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(marshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.ReconciliationRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading reconciliation CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []model.ReconciliationRow
	for i, rec := range records[1:] {
		row, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// marshalRow converts a row to CSV fields, money fixed to two places.
func marshalRow(row model.ReconciliationRow) []string {
	rec := make([]string, numFields)
	rec[colDate] = row.Date.String()
	rec[colBankSum] = row.BankSum.StringFixed(2)
	rec[colCash] = row.ZSumCash.StringFixed(2)
	rec[colNonCash] = row.ZSumNonCash.StringFixed(2)
	rec[colReturns] = row.ZRetSum.StringFixed(2)
	rec[colCorrected] = row.CashCorrection.StringFixed(2)
	rec[colDiff] = row.Difference.StringFixed(2)
	rec[colResult] = row.Result.StringFixed(2)
	return rec
}

// unmarshalRow converts CSV fields back to a row.
func unmarshalRow(rec []string) (model.ReconciliationRow, error) {
	if len(rec) != numFields {
		return model.ReconciliationRow{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	date, err := model.ParseDate(rec[colDate])
	if err != nil {
		return model.ReconciliationRow{}, err
	}

	var money [numFields]decimal.Decimal
	for col := colBankSum; col < numFields; col++ {
		money[col], err = decimal.NewFromString(rec[col])
		if err != nil {
			return model.ReconciliationRow{}, fmt.Errorf("parsing %s %q: %w", strings.Split(Header, ",")[col], rec[col], err)
		}
	}

	return model.ReconciliationRow{
		Date:           date,
		BankSum:        money[colBankSum],
		ZSumCash:       money[colCash],
		ZSumNonCash:    money[colNonCash],
		ZRetSum:        money[colReturns],
		CashCorrection: money[colCorrected],
		Difference:     money[colDiff],
		Result:         money[colResult],
	}, nil
}
