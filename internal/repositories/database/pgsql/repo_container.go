package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
)

// RepositoryContainer owns the pool-bound repositories and can spawn
// transaction-bound sets for unit-of-work callers.
type RepositoryContainer struct {
	BaseRepository
	repos portsrepo.RepositorySet
}

var _ portsrepo.RepositoryProvider = (*RepositoryContainer)(nil)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		BaseRepository: BaseRepository{Pool: dbPool},
		repos:          newRepositorySet(dbPool),
	}
}

func newRepositorySet(db Querier) portsrepo.RepositorySet {
	return portsrepo.RepositorySet{
		Account: newPgxAccountRepository(db),
		Ledger:  newPgxLedgerRepository(db),
		Product: newPgxProductRepository(db),
	}
}

// Repositories returns the pool-bound repository set.
func (c *RepositoryContainer) Repositories() portsrepo.RepositorySet {
	return c.repos
}

// WithTransaction runs fn against repositories bound to a single database
// transaction, committing when fn returns nil and rolling back otherwise.
func (c *RepositoryContainer) WithTransaction(ctx context.Context, fn func(set portsrepo.RepositorySet) error) error {
	tx, err := c.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = c.Rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(newRepositorySet(tx)); err != nil {
		if rbErr := c.Rollback(ctx, tx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return c.Commit(ctx, tx)
}
