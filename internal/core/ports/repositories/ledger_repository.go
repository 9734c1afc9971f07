package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// LedgerRepositoryFacade defines persistence operations for journal entries
// and their lines. SaveEntry persists the header and every line as one
// statement group on whatever connection or transaction the repository is
// bound to; readers never observe a partially written entry.
type LedgerRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// AccountTotals returns the summed debit and credit lines for one account.
	AccountTotals(ctx context.Context, accountID string) (totalDebit, totalCredit decimal.Decimal, err error)

	// ActivityByType aggregates debit/credit totals per account for the given
	// account types, restricted to entries dated within [from, to]
	// (inclusive; nil bounds are open-ended). Accounts with no posted lines
	// in range are omitted.
	ActivityByType(ctx context.Context, types []domain.AccountType, from, to *time.Time) ([]domain.AccountActivity, error)

	// AllAccountsActivity aggregates lifetime totals for every account in the
	// chart, including accounts with no posted lines.
	AllAccountsActivity(ctx context.Context) ([]domain.AccountActivity, error)

	// DatedAmountsByAccount returns one (entry date, credit - debit)
	// observation per line posted to the account, for in-Go time bucketing.
	DatedAmountsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.DatedAmount, error)

	// DatedAmountsByType is DatedAmountsByAccount across every account of a type.
	DatedAmountsByType(ctx context.Context, accountType domain.AccountType, from, to *time.Time) ([]domain.DatedAmount, error)
}
