package importer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cleared-dev/zrecon/internal/aggregate"
	"github.com/cleared-dev/zrecon/internal/model"
)

// PrivatBankParser normalizes PrivatBank (Privat24 for business) CSV exports.
type PrivatBankParser struct{}

const (
	privatColDate   = "Дата операції"
	privatColAmount = "Сума"
	privatColDesc   = "Призначення платежу"
)

var privatCommission = regexp.MustCompile(`Ком бан (\d+(\.\d+)?)`)

// Format returns the parser name.
func (p *PrivatBankParser) Format() string { return FormatPrivatBank }

// Normalize skips rows without a date or amount, strips thousand separators
// from the amount, adds the bank commission quoted in the payment purpose,
// keeps positive results and groups them by date. The date cell is used
// whole.
func (p *PrivatBankParser) Normalize(t model.Table) ([]model.DepositEntry, error) {
	if err := requireColumns(FormatPrivatBank, t, privatColDate, privatColAmount, privatColDesc); err != nil {
		return nil, err
	}

	var entries []model.DepositEntry
	for i, row := range t.Rows {
		dateCell, amountCell := row.Get(privatColDate), row.Get(privatColAmount)
		if dateCell.Empty() || amountCell.Empty() {
			continue
		}

		date, err := cellDate(FormatPrivatBank, lineOf(i), dateCell, false)
		if err != nil {
			return nil, err
		}

		amount := model.ParseAmount(stripSpace(amountCell.Value))
		commission := matchCommission(privatCommission, row.Get(privatColDesc).Value)
		amount = model.Round2(amount.Add(commission))
		if !amount.IsPositive() {
			continue
		}
		entries = append(entries, model.DepositEntry{Date: date, Amount: amount})
	}
	return aggregate.Deposits(entries), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
