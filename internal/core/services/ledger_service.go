package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
	"github.com/shopledger/shop_ledger_backend/internal/utils/accounting"
)

const defaultListLimit = 20

// ledgerService is the ledger engine: it exclusively owns journal entry and
// line creation, and computes balances and statements.
type ledgerService struct {
	chartSvc    portssvc.ChartSvcFacade
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	tx          portsrepo.TxRunner
}

// NewLedgerService creates the ledger engine.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, tx portsrepo.TxRunner, chartSvc portssvc.ChartSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		chartSvc:    chartSvc,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		tx:          tx,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateLines enforces the line discipline: nonnegative amounts and
// exactly one of debit/credit nonzero per line.
func validateLines(lines []dto.EntryLineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryNoLines)
	}
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("%w: line %d must set exactly one of debit or credit", apperrors.ErrValidation, i)
		}
	}
	return nil
}

// entryTotals sums the debit and credit sides of the requested lines.
func entryTotals(lines []dto.EntryLineInput) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// prepareEntry validates the request and builds the domain entry without
// touching storage. All validation, including the balance invariant and
// account resolution, happens here, before any write.
func (s *ledgerService) prepareEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}
	if err := validateLines(req.Lines); err != nil {
		return nil, err
	}

	totalDebit, totalCredit := entryTotals(req.Lines)
	if !totalDebit.Equal(totalCredit) {
		return nil, &UnbalancedEntryError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	codes := make([]string, len(req.Lines))
	for i, line := range req.Lines {
		codes[i] = line.AccountCode
	}
	accounts, err := s.chartSvc.ResolveAccountCodes(ctx, codes, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryDate := now
	if req.Date != nil {
		entryDate = *req.Date
	}

	entryID := uuid.NewString()
	lines := make([]domain.EntryLine, len(req.Lines))
	for i, line := range req.Lines {
		account := accounts[line.AccountCode]
		lines[i] = domain.EntryLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: account.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}

	return &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}, nil
}

// CreateEntry validates and persists a balanced journal entry atomically.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.prepareEntry(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(set portsrepo.RepositorySet) error {
		return set.Ledger.SaveEntry(ctx, *entry)
	})
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID))
	return entry, nil
}

// CreateEntryIn runs the same validation and persistence against a
// repository set already bound to an open transaction, so callers can group
// several entries into one unit of work.
func (s *ledgerService) CreateEntryIn(ctx context.Context, set portsrepo.RepositorySet, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entry, err := s.prepareEntry(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}
	if err := set.Ledger.SaveEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return entry, nil
}

// GetEntryByID retrieves one journal entry with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries returns a page of journal entries, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// AccountBalance computes an account's signed balance under the normal
// polarity convention: debit-normal for assets and expenses, credit-normal
// for liabilities, equity and income.
func (s *ledgerService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	totalDebit, totalCredit, err := s.ledgerRepo.AccountTotals(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum lines for account %s: %w", accountID, err)
	}

	return accounting.BalanceFor(account.AccountType, totalDebit, totalCredit)
}

// TrialBalance returns every account with its signed balance plus totals
// per account type.
func (s *ledgerService) TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error) {
	activity, err := s.ledgerRepo.AllAccountsActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	totals := make(map[domain.AccountType]decimal.Decimal, len(domain.AccountTypes))
	for _, t := range domain.AccountTypes {
		totals[t] = decimal.Zero
	}

	rows := make([]domain.TrialBalanceRow, len(activity))
	for i, a := range activity {
		balance, err := accounting.BalanceFor(a.AccountType, a.TotalDebit, a.TotalCredit)
		if err != nil {
			return nil, err
		}
		rows[i] = domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.AccountType,
			TotalDebit:  a.TotalDebit,
			TotalCredit: a.TotalCredit,
			Balance:     balance,
		}
		totals[a.AccountType] = totals[a.AccountType].Add(balance)
	}

	return &dto.TrialBalanceResponse{Rows: rows, Totals: totals}, nil
}

// IncomeStatement restricts to income and expense accounts within the
// optional date bounds (inclusive). Per account the raw figure is
// credit - debit; income accounts report it directly, expense accounts are
// sign-flipped so debit-heavy expenses surface as positive magnitudes.
func (s *ledgerService) IncomeStatement(ctx context.Context, from, to *time.Time) (*domain.IncomeStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.ledgerRepo.ActivityByType(ctx, []domain.AccountType{domain.Income, domain.Expense}, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate income and expense activity: %w", err)
	}

	statement := &domain.IncomeStatement{
		IncomeLines:  []domain.StatementLine{},
		ExpenseLines: []domain.StatementLine{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, a := range activity {
		raw := a.TotalCredit.Sub(a.TotalDebit)
		line := domain.StatementLine{
			AccountID:   a.AccountID,
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.AccountType,
		}
		switch a.AccountType {
		case domain.Income:
			line.Amount = raw
			statement.IncomeLines = append(statement.IncomeLines, line)
			statement.TotalIncome = statement.TotalIncome.Add(raw)
		case domain.Expense:
			// Expense accounts run debit-heavy, so raw is negative; flip it
			// so the statement shows expenses as positive magnitudes.
			flipped := raw.Neg()
			line.Amount = flipped
			statement.ExpenseLines = append(statement.ExpenseLines, line)
			statement.TotalExpense = statement.TotalExpense.Add(flipped)
		}
	}

	statement.NetResult = statement.TotalIncome.Sub(statement.TotalExpense)

	logger.Debug("Income statement built",
		slog.Int("income_accounts", len(statement.IncomeLines)),
		slog.Int("expense_accounts", len(statement.ExpenseLines)))
	return statement, nil
}
