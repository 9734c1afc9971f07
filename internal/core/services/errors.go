package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrEntryNoLines rejects an entry created with no lines at all.
	ErrEntryNoLines = errors.New("entry must have at least one line")

	// ErrInsufficientStock rejects a sale for more units than are on hand.
	ErrInsufficientStock = errors.New("insufficient stock for sale")
)

// UnbalancedEntryError is raised before any write when an entry's debit and
// credit totals differ. It carries both totals for diagnostics; the caller
// fixes its input, nothing is auto-corrected.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry is unbalanced: debit total %s, credit total %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

// UnknownAccountError is raised when a referenced account code cannot be
// resolved even after one re-seed of the chart of accounts. It signals a
// configuration problem, not a transient condition.
type UnknownAccountError struct {
	Code string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account code %q", e.Code)
}
