// Package reconcile merges aggregated bank deposits with aggregated Z-reports
// into the per-date reconciliation table.
package reconcile

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/zrecon/internal/model"
)

// Merge builds one row per date found in either series, in calendar order.
//
// Non-cash from a Z-report is expected in the bank on the next date that
// has a Z-report, so each row carries the non-cash of the most recent earlier
// Z-report. A day's cash correction is only known once the following row's
// bank difference is known; the last row keeps a zero correction.
//
// Both inputs must hold one entry per date (see package aggregate). They are
// not modified.
func Merge(deposits []model.DepositEntry, settlements []model.SettlementEntry) []model.ReconciliationRow {
	bank := make(map[model.Date]decimal.Decimal, len(deposits))
	for _, d := range deposits {
		bank[d.Date] = d.Amount
	}
	z := make(map[model.Date]model.SettlementEntry, len(settlements))
	for _, s := range settlements {
		z[s.Date] = s
	}

	dates := unionDates(deposits, settlements)
	shifted := shiftNonCash(dates, z)
	return correct(initialRows(dates, bank, z, shifted))
}

func unionDates(deposits []model.DepositEntry, settlements []model.SettlementEntry) []model.Date {
	seen := make(map[model.Date]bool, len(deposits)+len(settlements))
	var dates []model.Date
	add := func(d model.Date) {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	for _, d := range deposits {
		add(d.Date)
	}
	for _, s := range settlements {
		add(s.Date)
	}
	slices.SortFunc(dates, model.Date.Compare)
	return dates
}

// shiftNonCash assigns each date the non-cash of the latest Z-report strictly
// before it. Dates without a Z-report do not reset the carry.
func shiftNonCash(dates []model.Date, z map[model.Date]model.SettlementEntry) []decimal.Decimal {
	shifted := make([]decimal.Decimal, len(dates))
	carried := decimal.Zero
	for i, d := range dates {
		shifted[i] = carried
		if s, ok := z[d]; ok {
			carried = s.NonCash
		}
	}
	return shifted
}

func initialRows(dates []model.Date, bank map[model.Date]decimal.Decimal, z map[model.Date]model.SettlementEntry, shifted []decimal.Decimal) []model.ReconciliationRow {
	rows := make([]model.ReconciliationRow, len(dates))
	for i, d := range dates {
		s := z[d]
		row := model.ReconciliationRow{
			Date:        d,
			BankSum:     bank[d],
			ZSumCash:    s.Cash,
			ZSumNonCash: shifted[i],
			ZRetSum:     s.Returns,
		}
		row.Difference = model.Round2(row.BankSum.Sub(row.ZSumNonCash))
		row.Result = model.Round2(row.ZSumCash.Add(row.ZRetSum).Sub(row.ZSumNonCash))
		rows[i] = row
	}
	return rows
}

// correct returns a new table where every row but the last takes its cash
// correction and result from the next row's difference.
func correct(initial []model.ReconciliationRow) []model.ReconciliationRow {
	out := slices.Clone(initial)
	for i := range out {
		out[i].Difference = model.Round2(out[i].BankSum.Sub(out[i].ZSumNonCash))
		if i > 0 {
			prev := &out[i-1]
			prev.CashCorrection = model.Round2(prev.ZSumCash.Sub(out[i].Difference))
			prev.Result = model.Round2(prev.BankSum.Add(prev.CashCorrection).Sub(prev.ZRetSum))
		}
	}
	if n := len(out); n > 0 {
		last := &out[n-1]
		last.CashCorrection = decimal.Zero
		last.Result = model.Round2(last.BankSum.Add(last.CashCorrection).Sub(last.ZRetSum))
	}
	return out
}
