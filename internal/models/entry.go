package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the db row for one journal entry header.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	Reference   *string   `db:"reference"`
	AuditFields
}

// EntryLine is the db row for one debit/credit line.
type EntryLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
}
