package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// AccountResponse is one chart-of-accounts entry.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
}

// AccountBalanceResponse is an account's signed balance under the normal
// polarity convention.
type AccountBalanceResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
}

// TrialBalanceResponse is the chart with signed balances plus per-type totals.
type TrialBalanceResponse struct {
	Rows   []domain.TrialBalanceRow              `json:"rows"`
	Totals map[domain.AccountType]decimal.Decimal `json:"totals"`
}

// ToAccountResponse converts a domain Account.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: a.AccountType,
	}
}
