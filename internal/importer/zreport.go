package importer

import (
	"strings"

	"github.com/cleared-dev/zrecon/internal/aggregate"
	"github.com/cleared-dev/zrecon/internal/model"
)

// ZReportParser normalizes POS day-close (Z-report) spreadsheets.
type ZReportParser struct{}

const (
	zColDateTime = "OrderDateTime"
	zColCash     = "RlzSumCash"
	zColNonCash  = "RlzSumNonCash"
	zColReturns  = "RetSum"
)

// Format returns the parser name.
func (p *ZReportParser) Format() string { return FormatZReport }

// Normalize turns every row into a settlement entry, including zero-sales
// rows, and groups them by date. OrderDateTime may be a spreadsheet serial or
// dd.MM.yyyy text with an optional time; anything else fails the file.
func (p *ZReportParser) Normalize(t model.Table) ([]model.SettlementEntry, error) {
	if err := requireColumns(FormatZReport, t, zColDateTime, zColCash, zColNonCash, zColReturns); err != nil {
		return nil, err
	}

	entries := make([]model.SettlementEntry, 0, len(t.Rows))
	for i, row := range t.Rows {
		date, err := zReportDate(lineOf(i), row.Get(zColDateTime))
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.SettlementEntry{
			Date:    date,
			Cash:    model.ParseAmount(row.Get(zColCash).Value),
			NonCash: model.ParseAmount(row.Get(zColNonCash).Value),
			Returns: model.ParseAmount(row.Get(zColReturns).Value),
		})
	}
	return aggregate.Settlements(entries), nil
}

// zReportDate accepts numbers stored as text too, since some POS exports
// write the serial into a text cell.
func zReportDate(line int, c model.Cell) (model.Date, error) {
	d, err := cellDate(FormatZReport, line, c, true)
	if err == nil || c.Numeric {
		return d, err
	}
	if serial, serr := model.ParseSerial(strings.TrimSpace(c.Value)); serr == nil {
		return serial, nil
	}
	return model.Date{}, err
}
