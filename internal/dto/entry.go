package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// EntryLineInput is one debit-or-credit line of a create request, keyed by
// account code. Exactly one of debit/credit must be positive.
type EntryLineInput struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest is the payload for creating a journal entry.
// Date defaults to the creation time when omitted.
type CreateEntryRequest struct {
	Description string           `json:"description" binding:"required"`
	Date        *time.Time       `json:"date"`
	Reference   *string          `json:"reference"`
	Lines       []EntryLineInput `json:"lines" binding:"required,min=1,dive"`
}

// EntryLineResponse is one persisted line.
type EntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryResponse is one persisted journal entry with its lines.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	Reference   *string             `json:"reference,omitempty"`
	Lines       []EntryLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ListEntriesParams carries pagination parameters for entry listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of journal entries plus the cursor for the
// next page, if any.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain JournalEntry to its response form.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
