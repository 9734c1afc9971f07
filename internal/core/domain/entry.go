package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is an atomic, dated, balanced group of debit/credit lines
// recording one business event. Entries are immutable once created;
// corrections are modelled as new reversing entries, never edits.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`     // Primary key (UUID)
	EntryDate   time.Time   `json:"entryDate"`   // Date the event occurred; defaults to creation time
	Description string      `json:"description"` // Required
	Reference   *string     `json:"reference"`   // Optional free-form external reference (e.g. sale ID)
	Lines       []EntryLine `json:"lines"`       // At least two lines, debits equal credits
	AuditFields
}

// EntryLine is a single debit-or-credit amount against one account within an
// entry. Exactly one of Debit/Credit is nonzero; neither is negative.
type EntryLine struct {
	LineID    string          `json:"lineID"`  // Primary key (UUID)
	EntryID   string          `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}
