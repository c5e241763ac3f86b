package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/zrecon/internal/model"
)

var avalHeaders = []string{"Дата операції", "Кредит", "Дебет", "Призначення платежу"}

func TestAvalParser_Commission(t *testing.T) {
	tbl := table(avalHeaders,
		[]string{"02.01.2025 10:15:00", "100", "", "Зарахування еквайрингу комісія 12.50 грн"},
	)
	got, err := (&AvalParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "02.01.2025", got[0].Date.String())
	assert.Equal(t, "112.50", got[0].Amount.StringFixed(2))
}

func TestAvalParser_SkipsEmptyCreditAndGroups(t *testing.T) {
	tbl := table(avalHeaders,
		[]string{"02.01.2025 10:15:00", "100.10", "", "оплата"},
		[]string{"02.01.2025 12:00:00", "", "50", "списання"},
		[]string{"03.01.2025 09:00:00", "20", "", "комісія 1"},
		[]string{"02.01.2025 18:00:00", "0.90", "", ""},
	)
	got, err := (&AvalParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "02.01.2025", got[0].Date.String())
	assert.Equal(t, "101.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "03.01.2025", got[1].Date.String())
	assert.Equal(t, "21.00", got[1].Amount.StringFixed(2))
}

func TestAvalParser_MissingColumns(t *testing.T) {
	_, err := (&AvalParser{}).Normalize(table([]string{"Дата операції", "Дебет"}))
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, FormatAval, mce.Format)
	assert.Equal(t, []string{"Кредит", "Призначення платежу"}, mce.Columns)
	assert.Contains(t, err.Error(), "Кредит")
}

func TestAvalParser_BadDateFailsFile(t *testing.T) {
	tbl := table(avalHeaders,
		[]string{"02.01.2025", "10", "", ""},
		[]string{"2025-01-03 10:00", "10", "", ""},
	)
	_, err := (&AvalParser{}).Normalize(tbl)
	var dfe *DateFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, 3, dfe.Line)
	assert.Equal(t, "2025-01-03 10:00", dfe.Value)
}

var monoHeaders = []string{"Дата операції", "Деталі операції", "Сума операції", "Сума комісій, грн"}

func TestMonobankParser_SortedByCalendarDate(t *testing.T) {
	tbl := table(monoHeaders,
		[]string{"01.02.2025 09:00:00", "card", "200", "2.40"},
		[]string{"31.01.2025 10:00:00", "card", "100", "1.20"},
		[]string{"31.01.2025 11:00:00", "payout", "-50", "0"},
		[]string{"31.01.2025 12:00:00", "card", "10.005", "0"},
		[]string{"15.01.2025 12:00:00", "refund", "-1", "0.5"},
	)
	got, err := (&MonobankParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "31.01.2025", got[0].Date.String())
	assert.Equal(t, "111.21", got[0].Amount.StringFixed(2))
	assert.Equal(t, "01.02.2025", got[1].Date.String())
	assert.Equal(t, "202.40", got[1].Amount.StringFixed(2))
}

func TestMonobankParser_MissingCommission(t *testing.T) {
	_, err := (&MonobankParser{}).Normalize(table([]string{"Дата операції", "Сума операції"}))
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"Сума комісій, грн"}, mce.Columns)
}

func TestNovaPayParser(t *testing.T) {
	headers := []string{"Дата/час операції", "Дебет", "Кредит"}
	tbl := table(headers,
		[]string{"05.03.2025 08:00", "", "1500.50"},
		[]string{"05.03.2025 09:00", "100", ""},
		[]string{"05.03.2025 10:00", "", "0"},
		[]string{"06.03.2025 10:00", "", "99.99"},
	)
	got, err := (&NovaPayParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "05.03.2025", got[0].Date.String())
	assert.Equal(t, "1500.50", got[0].Amount.StringFixed(2))
	assert.Equal(t, "99.99", got[1].Amount.StringFixed(2))
}

func TestNovaPayParser_MissingColumns(t *testing.T) {
	_, err := (&NovaPayParser{}).Normalize(table([]string{"Кредит"}))
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"Дата/час операції"}, mce.Columns)
}

var privatHeaders = []string{"Дата операції", "Сума", "Валюта", "Призначення платежу"}

func TestPrivatBankParser(t *testing.T) {
	tbl := table(privatHeaders,
		[]string{"10.01.2025", "12 345.60", "UAH", "Відшкодування по торг. Ком бан 101.40"},
		[]string{"10.01.2025", "-500", "UAH", "Оплата"},
		[]string{"", "200", "UAH", "no date"},
		[]string{"11.01.2025", "", "UAH", "no amount"},
		[]string{"11.01.2025", "1 000", "UAH", ""},
	)
	got, err := (&PrivatBankParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10.01.2025", got[0].Date.String())
	assert.Equal(t, "12447.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "11.01.2025", got[1].Date.String())
	assert.Equal(t, "1000.00", got[1].Amount.StringFixed(2))
}

func TestPrivatBankParser_DateIsNotSplit(t *testing.T) {
	tbl := table(privatHeaders, []string{"10.01.2025 10:00", "10", "UAH", ""})
	_, err := (&PrivatBankParser{}).Normalize(tbl)
	var dfe *DateFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, FormatPrivatBank, dfe.Format)
	assert.Equal(t, 2, dfe.Line)
}

func TestPrivatBankParser_KeepsRowWithoutDescription(t *testing.T) {
	tbl := table(privatHeaders,
		[]string{"11.01.2025", "250", "UAH", ""},
		[]string{"", "99", "UAH", "Ком бан 1"},
		[]string{"11.01.2025", "", "UAH", "Ком бан 1"},
	)
	got, err := (&PrivatBankParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "11.01.2025", got[0].Date.String())
	assert.Equal(t, "250.00", got[0].Amount.StringFixed(2))
}

func TestPrivatBankParser_MissingColumns(t *testing.T) {
	_, err := (&PrivatBankParser{}).Normalize(table([]string{"Дата операції"}))
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"Сума", "Призначення платежу"}, mce.Columns)
}

var zHeaders = []string{"OrderDateTime", "RlzSumCash", "RlzSumNonCash", "RetSum"}

func TestZReportParser_SerialAndTextDates(t *testing.T) {
	tbl := model.Table{Headers: zHeaders, Rows: []model.RawRow{
		{"OrderDateTime": model.Number("45000.8125"), "RlzSumCash": model.Number("100.5"), "RlzSumNonCash": model.Number("200"), "RetSum": model.Number("0")},
		{"OrderDateTime": model.Text("15.03.2023 21:00:00"), "RlzSumCash": model.Text("1.25"), "RlzSumNonCash": model.Text("0"), "RetSum": model.Text("3")},
		{"OrderDateTime": model.Text("45001"), "RlzSumCash": model.Text("0"), "RlzSumNonCash": model.Text("0"), "RetSum": model.Text("0")},
	}}
	got, err := (&ZReportParser{}).Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "15.03.2023", got[0].Date.String())
	assert.Equal(t, "101.75", got[0].Cash.StringFixed(2))
	assert.Equal(t, "200.00", got[0].NonCash.StringFixed(2))
	assert.Equal(t, "3.00", got[0].Returns.StringFixed(2))

	// Zero-sales day is kept.
	assert.Equal(t, "16.03.2023", got[1].Date.String())
	assert.True(t, got[1].Cash.IsZero())
}

func TestZReportParser_BadDateFailsFile(t *testing.T) {
	tests := []struct {
		name string
		cell model.Cell
	}{
		{"text", model.Text("yesterday")},
		{"text NaN", model.Text("NaN")},
		{"text Inf", model.Text("Inf")},
		{"text negative infinity", model.Text("-infinity")},
		{"text negative serial", model.Text("-1")},
		{"text huge serial", model.Text("1e18")},
		{"numeric NaN", model.Number("NaN")},
		{"numeric Inf", model.Number("Inf")},
		{"numeric negative serial", model.Number("-1")},
		{"numeric huge serial", model.Number("1e18")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := model.Table{Headers: zHeaders, Rows: []model.RawRow{
				{"OrderDateTime": model.Text("15.03.2023"), "RlzSumCash": model.Text("1"), "RlzSumNonCash": model.Text("2"), "RetSum": model.Text("3")},
				{"OrderDateTime": tt.cell, "RlzSumCash": model.Text("1"), "RlzSumNonCash": model.Text("2"), "RetSum": model.Text("3")},
			}}
			got, err := (&ZReportParser{}).Normalize(tbl)
			assert.Nil(t, got)
			var dfe *DateFormatError
			require.ErrorAs(t, err, &dfe)
			assert.Equal(t, FormatZReport, dfe.Format)
			assert.Equal(t, 3, dfe.Line)
			assert.Equal(t, tt.cell.Value, dfe.Value)
		})
	}
}

func TestZReportParser_MissingColumns(t *testing.T) {
	_, err := (&ZReportParser{}).Normalize(table([]string{"OrderDateTime", "RlzSumCash"}))
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"RlzSumNonCash", "RetSum"}, mce.Columns)
}

func TestZReportParser_Empty(t *testing.T) {
	got, err := (&ZReportParser{}).Normalize(table(zHeaders))
	require.NoError(t, err)
	assert.Empty(t, got)
}
