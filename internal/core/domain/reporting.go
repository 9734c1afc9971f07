package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one account's contribution to an income statement.
// Amount is always a positive magnitude: income accounts report their
// credit-heavy balance directly, expense accounts are sign-flipped so a
// debit-heavy expense surfaces as a positive figure.
type StatementLine struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatement is the income-minus-expense report over a date range.
type IncomeStatement struct {
	IncomeLines  []StatementLine `json:"incomeLines"`
	ExpenseLines []StatementLine `json:"expenseLines"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetResult    decimal.Decimal `json:"netResult"`
}

// AccountActivity is one account's raw posted totals, as aggregated by the
// persistence layer. No polarity is applied yet.
type AccountActivity struct {
	AccountID   string
	Code        string
	Name        string
	AccountType AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// TrialBalanceRow carries one account's raw debit/credit totals plus its
// signed balance under the normal-polarity convention.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// DatedAmount is a raw (date, value) observation fed to time-series bucketing.
type DatedAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}

// TimeSeriesPoint is one aggregated bucket of a report series, already in
// chronological order when returned by the aggregator.
type TimeSeriesPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}
