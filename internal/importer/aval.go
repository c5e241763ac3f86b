package importer

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/zrecon/internal/aggregate"
	"github.com/cleared-dev/zrecon/internal/model"
)

// AvalParser normalizes Raiffeisen Bank Aval statement exports.
type AvalParser struct{}

const (
	avalColDate   = "Дата операції"
	avalColCredit = "Кредит"
	avalColDesc   = "Призначення платежу"
)

var avalCommission = regexp.MustCompile(`комісія (\d+(\.\d+)?)`)

// Format returns the parser name.
func (p *AvalParser) Format() string { return FormatAval }

// Normalize keeps rows with a credit, adds the commission quoted in the
// payment purpose, and groups the result by date.
func (p *AvalParser) Normalize(t model.Table) ([]model.DepositEntry, error) {
	if err := requireColumns(FormatAval, t, avalColDate, avalColCredit, avalColDesc); err != nil {
		return nil, err
	}

	var entries []model.DepositEntry
	for i, row := range t.Rows {
		credit := row.Get(avalColCredit)
		if credit.Empty() {
			continue
		}

		date, err := cellDate(FormatAval, lineOf(i), row.Get(avalColDate), true)
		if err != nil {
			return nil, err
		}

		amount := model.ParseAmount(credit.Value)
		commission := matchCommission(avalCommission, row.Get(avalColDesc).Value)
		entries = append(entries, model.DepositEntry{
			Date:   date,
			Amount: model.Round2(amount.Add(commission)),
		})
	}
	return aggregate.Deposits(entries), nil
}

// matchCommission extracts the first captured number of re from desc, or zero.
func matchCommission(re *regexp.Regexp, desc string) decimal.Decimal {
	m := re.FindStringSubmatch(desc)
	if m == nil {
		return decimal.Zero
	}
	return model.ParseAmount(m[1])
}
