// Package aggregate groups canonical entries by calendar date.
package aggregate

import (
	"github.com/cleared-dev/zrecon/internal/model"
)

// byDate is an insertion-ordered map from date to accumulated value.
type byDate[T any] struct {
	order []model.Date
	vals  map[model.Date]*T
}

func newByDate[T any](capacity int) *byDate[T] {
	return &byDate[T]{vals: make(map[model.Date]*T, capacity)}
}

// slot returns the accumulator for d, creating it with init on first sight.
func (m *byDate[T]) slot(d model.Date, init func() T) *T {
	if v, ok := m.vals[d]; ok {
		return v
	}
	v := init()
	m.vals[d] = &v
	m.order = append(m.order, d)
	return &v
}

func (m *byDate[T]) values() []T {
	out := make([]T, 0, len(m.order))
	for _, d := range m.order {
		out = append(out, *m.vals[d])
	}
	return out
}

// Deposits sums amounts per date. The running total is rounded to two places
// after every addition, not once at the end. Dates come out in order of first
// appearance.
func Deposits(entries []model.DepositEntry) []model.DepositEntry {
	m := newByDate[model.DepositEntry](len(entries))
	for _, e := range entries {
		acc := m.slot(e.Date, func() model.DepositEntry {
			return model.DepositEntry{Date: e.Date}
		})
		acc.Amount = model.Round2(acc.Amount.Add(e.Amount))
	}
	return m.values()
}

// Settlements sums cash, non-cash and returns per date independently, with
// the same step-wise rounding and ordering as Deposits.
func Settlements(entries []model.SettlementEntry) []model.SettlementEntry {
	m := newByDate[model.SettlementEntry](len(entries))
	for _, e := range entries {
		acc := m.slot(e.Date, func() model.SettlementEntry {
			return model.SettlementEntry{Date: e.Date}
		})
		acc.Cash = model.Round2(acc.Cash.Add(e.Cash))
		acc.NonCash = model.Round2(acc.NonCash.Add(e.NonCash))
		acc.Returns = model.Round2(acc.Returns.Add(e.Returns))
	}
	return m.values()
}
