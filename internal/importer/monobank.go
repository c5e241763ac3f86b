package importer

import (
	"slices"

	"github.com/cleared-dev/zrecon/internal/aggregate"
	"github.com/cleared-dev/zrecon/internal/model"
)

// MonobankParser normalizes monobank business statement exports.
type MonobankParser struct{}

const (
	monoColDate       = "Дата операції"
	monoColAmount     = "Сума операції"
	monoColCommission = "Сума комісій, грн"
)

// Format returns the parser name.
func (p *MonobankParser) Format() string { return FormatMonobank }

// Normalize adds the commission column to each amount, keeps positive
// results, groups by date and returns the groups in calendar order.
func (p *MonobankParser) Normalize(t model.Table) ([]model.DepositEntry, error) {
	if err := requireColumns(FormatMonobank, t, monoColDate, monoColAmount, monoColCommission); err != nil {
		return nil, err
	}

	var entries []model.DepositEntry
	for i, row := range t.Rows {
		date, err := cellDate(FormatMonobank, lineOf(i), row.Get(monoColDate), true)
		if err != nil {
			return nil, err
		}

		amount := model.ParseAmount(row.Get(monoColAmount).Value)
		commission := model.ParseAmount(row.Get(monoColCommission).Value)
		amount = model.Round2(amount.Add(commission))
		if !amount.IsPositive() {
			continue
		}
		entries = append(entries, model.DepositEntry{Date: date, Amount: amount})
	}

	grouped := aggregate.Deposits(entries)
	slices.SortStableFunc(grouped, func(a, b model.DepositEntry) int {
		return a.Date.Compare(b.Date)
	})
	return grouped, nil
}
