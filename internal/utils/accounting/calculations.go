package accounting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// ErrZeroTotalQuantity is returned by WeightedAverageCost when the
// post-movement quantity is zero and blending would divide by zero. Callers
// decide the policy (treat as no change or reject the movement).
var ErrZeroTotalQuantity = errors.New("total quantity after movement is zero")

// BalanceFor applies the normal accounting polarity to raw debit/credit
// totals. ASSET and EXPENSE accounts carry debit-normal balances
// (debit - credit); LIABILITY, EQUITY and INCOME accounts carry
// credit-normal balances (credit - debit). Reversing this silently corrupts
// every report built on top.
func BalanceFor(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totalDebit.Sub(totalCredit), nil
	case domain.Liability, domain.Equity, domain.Income:
		return totalCredit.Sub(totalDebit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// WeightedAverageCost blends existing and incoming stock cost by quantity:
//
//	((currentQty * currentCost) + (incomingQty * incomingCost)) / (currentQty + incomingQty)
//
// rounded to 2 decimal places. With no prior stock the incoming cost wins
// outright.
func WeightedAverageCost(currentQty, currentCost, incomingQty, incomingCost decimal.Decimal) (decimal.Decimal, error) {
	if currentQty.LessThanOrEqual(decimal.Zero) {
		return incomingCost, nil
	}

	totalQty := currentQty.Add(incomingQty)
	if totalQty.IsZero() {
		return decimal.Zero, ErrZeroTotalQuantity
	}

	totalValue := currentQty.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return totalValue.DivRound(totalQty, 2), nil
}
