package dto

import "github.com/shopledger/shop_ledger_backend/internal/core/domain"

// TimeSeriesQuery binds the interval query parameter for report endpoints.
// The granularity validator is registered at startup.
type TimeSeriesQuery struct {
	Interval string `form:"interval" binding:"omitempty,granularity"`
}

// TimeSeriesResponse is one aggregated report series, chronological.
type TimeSeriesResponse struct {
	Interval string                   `json:"interval"`
	Points   []domain.TimeSeriesPoint `json:"points"`
}

// IncomeVsExpenseResponse carries the paired income and expense series for
// one interval. Expense values are positive magnitudes.
type IncomeVsExpenseResponse struct {
	Interval string                   `json:"interval"`
	Income   []domain.TimeSeriesPoint `json:"income"`
	Expense  []domain.TimeSeriesPoint `json:"expense"`
}

// IncomeStatementQuery binds the optional date bounds, both inclusive.
type IncomeStatementQuery struct {
	From *string `form:"from"` // YYYY-MM-DD
	To   *string `form:"to"`   // YYYY-MM-DD
}
