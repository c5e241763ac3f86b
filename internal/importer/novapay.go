package importer

import (
	"github.com/cleared-dev/zrecon/internal/aggregate"
	"github.com/cleared-dev/zrecon/internal/model"
)

// NovaPayParser normalizes NovaPay account statement exports.
type NovaPayParser struct{}

const (
	novaColDateTime = "Дата/час операції"
	novaColCredit   = "Кредит"
)

// Format returns the parser name.
func (p *NovaPayParser) Format() string { return FormatNovaPay }

// Normalize keeps positive credits and groups them by date.
func (p *NovaPayParser) Normalize(t model.Table) ([]model.DepositEntry, error) {
	if err := requireColumns(FormatNovaPay, t, novaColDateTime, novaColCredit); err != nil {
		return nil, err
	}

	var entries []model.DepositEntry
	for i, row := range t.Rows {
		date, err := cellDate(FormatNovaPay, lineOf(i), row.Get(novaColDateTime), true)
		if err != nil {
			return nil, err
		}

		amount := model.Round2(model.ParseAmount(row.Get(novaColCredit).Value))
		if !amount.IsPositive() {
			continue
		}
		entries = append(entries, model.DepositEntry{Date: date, Amount: amount})
	}
	return aggregate.Deposits(entries), nil
}
