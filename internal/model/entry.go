package model

import "github.com/shopspring/decimal"

// DepositEntry is one bank-credited amount attributed to a calendar date.
type DepositEntry struct {
	Date   Date
	Amount decimal.Decimal
}

// SettlementEntry is one POS day-close (Z-report) record.
type SettlementEntry struct {
	Date    Date
	Cash    decimal.Decimal
	NonCash decimal.Decimal
	Returns decimal.Decimal
}

// ReconciliationRow is one date of the merged bank vs Z-report table.
type ReconciliationRow struct {
	Date           Date
	BankSum        decimal.Decimal
	ZSumCash       decimal.Decimal
	ZSumNonCash    decimal.Decimal // non-cash shifted from the previous Z-report date
	ZRetSum        decimal.Decimal
	CashCorrection decimal.Decimal
	Difference     decimal.Decimal
	Result         decimal.Decimal
}
