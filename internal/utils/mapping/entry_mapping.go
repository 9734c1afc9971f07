package mapping

import (
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	"github.com/shopledger/shop_ledger_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model row.
// Lines are mapped separately; they live in their own table.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry row to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to its model row.
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
	}
}

// ToDomainEntryLine converts a model EntryLine row to its domain form.
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
	}
}

// ToDomainEntryLineSlice converts a slice of model lines to domain lines.
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
