package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/zrecon/internal/model"
)

func dep(date, amount string) model.DepositEntry {
	return model.DepositEntry{Date: model.MustParseDate(date), Amount: decimal.RequireFromString(amount)}
}

func TestDeposits_GroupsByDate(t *testing.T) {
	got := Deposits([]model.DepositEntry{
		dep("02.01.2025", "10.10"),
		dep("01.01.2025", "5"),
		dep("02.01.2025", "20.20"),
		dep("01.01.2025", "1.25"),
		dep("03.01.2025", "7"),
	})
	require.Len(t, got, 3)

	// First-appearance order, not calendar order.
	assert.Equal(t, "02.01.2025", got[0].Date.String())
	assert.Equal(t, "01.01.2025", got[1].Date.String())
	assert.Equal(t, "03.01.2025", got[2].Date.String())

	assert.Equal(t, "30.30", got[0].Amount.StringFixed(2))
	assert.Equal(t, "6.25", got[1].Amount.StringFixed(2))
	assert.Equal(t, "7.00", got[2].Amount.StringFixed(2))
}

func TestDeposits_StepwiseRounding(t *testing.T) {
	entries := []model.DepositEntry{
		dep("01.01.2025", "0.005"),
		dep("01.01.2025", "0.005"),
	}

	// Rounding only at the end would give 0.01.
	endRounded := model.Round2(entries[0].Amount.Add(entries[1].Amount))
	assert.Equal(t, "0.01", endRounded.StringFixed(2))

	// Step-wise: 0.005 -> 0.01, then 0.01 + 0.005 = 0.015 -> 0.02.
	got := Deposits(entries)
	require.Len(t, got, 1)
	assert.Equal(t, "0.02", got[0].Amount.StringFixed(2))
}

func TestDeposits_Idempotent(t *testing.T) {
	once := Deposits([]model.DepositEntry{
		dep("01.01.2025", "1.111"),
		dep("01.01.2025", "2.222"),
		dep("02.01.2025", "3"),
	})
	twice := Deposits(once)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Date, twice[i].Date)
		assert.True(t, once[i].Amount.Equal(twice[i].Amount), "%s: %s != %s", once[i].Date, once[i].Amount, twice[i].Amount)
	}
}

func TestDeposits_Empty(t *testing.T) {
	assert.Empty(t, Deposits(nil))
}

func TestSettlements_SumsFieldsIndependently(t *testing.T) {
	d := model.MustParseDate("05.02.2025")
	got := Settlements([]model.SettlementEntry{
		{Date: d, Cash: decimal.RequireFromString("100.10"), NonCash: decimal.RequireFromString("50"), Returns: decimal.Zero},
		{Date: d, Cash: decimal.RequireFromString("0.005"), NonCash: decimal.RequireFromString("0.004"), Returns: decimal.RequireFromString("3.5")},
		{Date: model.MustParseDate("04.02.2025")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, d, got[0].Date)
	assert.Equal(t, "100.11", got[0].Cash.StringFixed(2))
	assert.Equal(t, "50.00", got[0].NonCash.StringFixed(2))
	assert.Equal(t, "3.50", got[0].Returns.StringFixed(2))

	// Zero-sales days are kept.
	assert.Equal(t, "04.02.2025", got[1].Date.String())
	assert.True(t, got[1].Cash.IsZero())
}

func TestSettlements_StepwiseRounding(t *testing.T) {
	d := model.MustParseDate("01.01.2025")
	third := decimal.RequireFromString("0.005")
	got := Settlements([]model.SettlementEntry{
		{Date: d, NonCash: third},
		{Date: d, NonCash: third},
		{Date: d, NonCash: third},
	})
	require.Len(t, got, 1)
	// 0.01 -> 0.02 -> 0.03; end rounding of 0.015 would give 0.02.
	assert.Equal(t, "0.03", got[0].NonCash.StringFixed(2))
}
