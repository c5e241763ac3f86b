// Package report renders reconciliation results for people: a terminal
// table and CSV, XLSX and PDF exports.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cleared-dev/zrecon/internal/model"
)

// Column titles shared by the terminal table and the spreadsheet/PDF exports.
var columns = []string{"Дата", "Банк", "Z готівка", "Z безготівка", "Повернення", "Корекція готівки", "Різниця", "Результат"}

func cells(row model.ReconciliationRow) []string {
	return []string{
		row.Date.String(),
		row.BankSum.StringFixed(2),
		row.ZSumCash.StringFixed(2),
		row.ZSumNonCash.StringFixed(2),
		row.ZRetSum.StringFixed(2),
		row.CashCorrection.StringFixed(2),
		row.Difference.StringFixed(2),
		row.Result.StringFixed(2),
	}
}

// WriteTable prints rows as an aligned table with numbers right-aligned.
func WriteTable(w io.Writer, rows []model.ReconciliationRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, strings.Join(columns, "\t")+"\t"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(cells(row), "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteDeposits prints normalized bank deposits, one per line.
func WriteDeposits(w io.Writer, deposits []model.DepositEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Дата\tСума\t")
	for _, d := range deposits {
		fmt.Fprintf(tw, "%s\t%s\t\n", d.Date, d.Amount.StringFixed(2))
	}
	return tw.Flush()
}

// WriteSettlements prints normalized Z-report entries, one per line.
func WriteSettlements(w io.Writer, settlements []model.SettlementEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Дата\tГотівка\tБезготівка\tПовернення\t")
	for _, s := range settlements {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", s.Date, s.Cash.StringFixed(2), s.NonCash.StringFixed(2), s.Returns.StringFixed(2))
	}
	return tw.Flush()
}
