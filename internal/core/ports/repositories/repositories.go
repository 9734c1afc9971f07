package repositories

import "context"

// RepositorySet groups the repositories that can participate in one unit of
// work. Inside TxRunner.WithTransaction every member is bound to the same
// database transaction.
type RepositorySet struct {
	Account AccountRepositoryFacade
	Ledger  LedgerRepositoryFacade
	Product ProductRepositoryFacade
}

// TxRunner executes a function within a single database transaction,
// committing on nil and rolling back on error or panic. It exists so the
// paired entries of a sale (revenue + cost) and their stock mutation cannot
// be half-committed.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(set RepositorySet) error) error
}

// RepositoryProvider exposes the non-transactional repositories plus the
// transaction runner.
type RepositoryProvider interface {
	TxRunner
	Repositories() RepositorySet
}
