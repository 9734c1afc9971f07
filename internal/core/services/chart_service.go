package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
)

// chartService owns the chart of accounts: seeding and code resolution.
type chartService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartService creates the account directory service.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartSvcFacade {
	return &chartService{accountRepo: accountRepo}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// EnsureChartOfAccounts idempotently inserts the bootstrap account set.
// Codes already present are left untouched; on storage failure the whole
// seeding rolls back and the error surfaces.
func (s *chartService) EnsureChartOfAccounts(ctx context.Context, seederUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	accounts := make([]domain.Account, len(domain.ChartOfAccounts))
	for i, seed := range domain.ChartOfAccounts {
		accounts[i] = domain.Account{
			AccountID:   uuid.NewString(),
			Code:        seed.Code,
			Name:        seed.Name,
			AccountType: seed.AccountType,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seederUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: seederUserID,
			},
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		logger.Error("Failed to seed chart of accounts", slog.String("error", err.Error()))
		return fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	logger.Info("Chart of accounts ensured", slog.Int("accounts", len(accounts)))
	return nil
}

// GetAccountByCode looks up one account by its stable code.
func (s *chartService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts returns the full chart ordered by code.
func (s *chartService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ResolveAccountCodes maps account codes to accounts. If any code is
// missing it re-seeds the chart exactly once and retries; a code still
// missing after that is a configuration problem, reported as
// UnknownAccountError. The re-seed is idempotent and runs on its own
// connection, never inside an entry's transaction.
func (s *chartService) ResolveAccountCodes(ctx context.Context, codes []string, seederUserID string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unique := uniqueStrings(codes)
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account codes: %w", err)
	}

	missing := missingCodes(unique, accounts)
	if len(missing) == 0 {
		return accounts, nil
	}

	logger.Warn("Account codes missing, re-seeding chart of accounts once", slog.Any("codes", missing))
	if err := s.EnsureChartOfAccounts(ctx, seederUserID); err != nil {
		return nil, err
	}

	accounts, err = s.accountRepo.FindAccountsByCodes(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account codes after re-seed: %w", err)
	}

	missing = missingCodes(unique, accounts)
	if len(missing) > 0 {
		return nil, &UnknownAccountError{Code: missing[0]}
	}
	return accounts, nil
}

func missingCodes(codes []string, found map[string]domain.Account) []string {
	var missing []string
	for _, code := range codes {
		if _, ok := found[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
