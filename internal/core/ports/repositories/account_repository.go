package repositories

import (
	"context"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts. SaveAccounts is insert-if-absent keyed by code, so re-running
// the seed never duplicates or errors.
type AccountRepositoryFacade interface {
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
