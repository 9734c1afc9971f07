package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_backend/internal/models"
	"github.com/shopledger/shop_ledger_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	db Querier
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(db Querier) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, created_at, created_by, last_updated_at, last_updated_by`

// SaveAccounts inserts accounts, skipping any whose code already exists.
// Running the seed twice therefore leaves the chart unchanged.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, code, name, account_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO NOTHING;
	`
	for _, account := range accounts {
		modelAcc := mapping.ToModelAccount(account)
		_, err := r.db.Exec(ctx, query,
			modelAcc.AccountID,
			modelAcc.Code,
			modelAcc.Name,
			modelAcc.AccountType,
			modelAcc.CreatedAt,
			modelAcc.CreatedBy,
			modelAcc.LastUpdatedAt,
			modelAcc.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save account %s: %w", modelAcc.Code, err)
		}
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountByCode retrieves one account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	account, err := scanAccount(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account with code %s not found", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return account, nil
}

// FindAccountByID retrieves one account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	account, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account with ID %s not found", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountsByCodes fetches the accounts for the given codes, keyed by
// code. Codes with no matching account are simply absent from the map.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1);`

	rows, err := r.db.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to collect accounts by codes: %w", err)
	}

	accounts := make(map[string]domain.Account, len(modelAccounts))
	for _, m := range modelAccounts {
		accounts[m.Code] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}

// ListAccounts returns the full chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to collect accounts: %w", err)
	}

	accounts := make([]domain.Account, len(modelAccounts))
	for i, m := range modelAccounts {
		accounts[i] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}
