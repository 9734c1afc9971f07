package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_backend/internal/models"
	"github.com/shopledger/shop_ledger_backend/internal/utils/mapping"
	"github.com/shopledger/shop_ledger_backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	db Querier
}

// newPgxLedgerRepository creates a new repository for journal entries and lines.
func newPgxLedgerRepository(db Querier) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{db: db}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry persists the entry header and all of its lines. The lines go
// out as one pgx batch; when the repository is transaction-bound the whole
// write shares that transaction.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", modelEntry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelEntryLine(line)
		batch.Queue(lineQuery, modelLine.LineID, modelLine.EntryID, modelLine.AccountID, modelLine.Debit, modelLine.Credit)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save entry line for entry %s: %w", modelEntry.EntryID, err)
		}
	}
	return nil
}

// FindEntryByID loads one entry with its lines ordered as posted.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entryQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	var m models.JournalEntry
	err := r.db.QueryRow(ctx, entryQuery, entryID).Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s not found", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.linesForEntries(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(m)
	entry.Lines = lines[entryID]
	return &entry, nil
}

// ListEntries returns a page of entries ordered newest first, with lines
// attached. The returned token, when non-nil, resumes after the last entry.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + entryColumns + ` FROM journal_entries`

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` WHERE (entry_date, entry_id) < ($2, $3)`
		args = append(args, tokenDate, tokenID)
	}
	query += ` ORDER BY entry_date DESC, entry_id DESC LIMIT $1;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect journal entries: %w", err)
	}

	var newToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryID)
		newToken = &token
	}

	if len(modelEntries) == 0 {
		return []domain.JournalEntry{}, nil, nil
	}

	entryIDs := make([]string, len(modelEntries))
	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entryIDs[i] = m.EntryID
		entries[i] = mapping.ToDomainJournalEntry(m)
	}

	linesByEntry, err := r.linesForEntries(ctx, entryIDs)
	if err != nil {
		return nil, nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}

	return entries, newToken, nil
}

// linesForEntries fetches the lines for a set of entries, grouped by entry ID.
func (r *PgxLedgerRepository) linesForEntries(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit
		FROM entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY line_id;
	`
	rows, err := r.db.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines: %w", err)
	}
	defer rows.Close()

	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.EntryLine])
	if err != nil {
		return nil, fmt.Errorf("failed to collect entry lines: %w", err)
	}

	linesByEntry := make(map[string][]domain.EntryLine, len(entryIDs))
	for _, m := range modelLines {
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], mapping.ToDomainEntryLine(m))
	}
	return linesByEntry, nil
}

// AccountTotals sums the posted debit and credit lines for one account.
func (r *PgxLedgerRepository) AccountTotals(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM entry_lines
		WHERE account_id = $1;
	`
	var totalDebit, totalCredit decimal.Decimal
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum lines for account %s: %w", accountID, err)
	}
	return totalDebit, totalCredit, nil
}

// dateBounds appends optional entry-date range predicates to a query that
// already joins journal_entries as je.
func dateBounds(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND je.entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND je.entry_date <= $%d", len(args))
	}
	return query, args
}

func collectActivity(rows pgx.Rows) ([]domain.AccountActivity, error) {
	defer rows.Close()

	var activities []domain.AccountActivity
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.AccountType, &a.TotalDebit, &a.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan account activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account activity rows: %w", err)
	}
	return activities, nil
}

// ActivityByType aggregates posted totals per account for the given types
// within the optional date range. Accounts without lines in range drop out
// of the inner join.
func (r *PgxLedgerRepository) ActivityByType(ctx context.Context, types []domain.AccountType, from, to *time.Time) ([]domain.AccountActivity, error) {
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, SUM(el.debit), SUM(el.credit)
		FROM entry_lines el
		JOIN journal_entries je ON je.entry_id = el.entry_id
		JOIN accounts a ON a.account_id = el.account_id
		WHERE a.account_type = ANY($1)
	`
	args := []any{typeStrings}
	query, args = dateBounds(query, args, from, to)
	query += ` GROUP BY a.account_id, a.code, a.name, a.account_type ORDER BY a.code;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity by type: %w", err)
	}
	return collectActivity(rows)
}

// AllAccountsActivity aggregates lifetime totals for every account,
// reporting zero for accounts that have never been posted to.
func (r *PgxLedgerRepository) AllAccountsActivity(ctx context.Context) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(el.debit), 0), COALESCE(SUM(el.credit), 0)
		FROM accounts a
		LEFT JOIN entry_lines el ON el.account_id = a.account_id
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all accounts activity: %w", err)
	}
	return collectActivity(rows)
}

func collectDatedAmounts(rows pgx.Rows) ([]domain.DatedAmount, error) {
	defer rows.Close()

	var amounts []domain.DatedAmount
	for rows.Next() {
		var d domain.DatedAmount
		if err := rows.Scan(&d.Date, &d.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan dated amount: %w", err)
		}
		amounts = append(amounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading dated amount rows: %w", err)
	}
	return amounts, nil
}

// DatedAmountsByAccount returns (entry date, credit - debit) per line for
// one account. Bucketing happens in the service layer.
func (r *PgxLedgerRepository) DatedAmountsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.DatedAmount, error) {
	query := `
		SELECT je.entry_date, el.credit - el.debit
		FROM entry_lines el
		JOIN journal_entries je ON je.entry_id = el.entry_id
		WHERE el.account_id = $1
	`
	args := []any{accountID}
	query, args = dateBounds(query, args, from, to)
	query += ` ORDER BY je.entry_date;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dated amounts for account %s: %w", accountID, err)
	}
	return collectDatedAmounts(rows)
}

// DatedAmountsByType is DatedAmountsByAccount across every account of a type.
func (r *PgxLedgerRepository) DatedAmountsByType(ctx context.Context, accountType domain.AccountType, from, to *time.Time) ([]domain.DatedAmount, error) {
	query := `
		SELECT je.entry_date, el.credit - el.debit
		FROM entry_lines el
		JOIN journal_entries je ON je.entry_id = el.entry_id
		JOIN accounts a ON a.account_id = el.account_id
		WHERE a.account_type = $1
	`
	args := []any{string(accountType)}
	query, args = dateBounds(query, args, from, to)
	query += ` ORDER BY je.entry_date;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dated amounts for type %s: %w", accountType, err)
	}
	return collectDatedAmounts(rows)
}
