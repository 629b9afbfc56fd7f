package mapping

import (
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/contazen/erp_ledger_core/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its row model.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:          d.EntryID,
		CompanyID:        d.CompanyID,
		FranchiseID:      d.FranchiseID,
		EntryType:        string(d.EntryType),
		ReferenceNumber:  d.ReferenceNumber,
		IdempotencyKey:   d.IdempotencyKey,
		Amount:           d.Amount,
		Description:      d.Description,
		Status:           models.EntryStatus(d.Status),
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a row model to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:          m.EntryID,
		CompanyID:        m.CompanyID,
		FranchiseID:      m.FranchiseID,
		EntryType:        domain.EntryType(m.EntryType),
		ReferenceNumber:  m.ReferenceNumber,
		IdempotencyKey:   m.IdempotencyKey,
		Amount:           m.Amount,
		Description:      m.Description,
		Status:           domain.EntryStatus(m.Status),
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to its row model.
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountCode:  d.AccountCode,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerLine converts a row model to a domain LedgerLine.
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountCode:  m.AccountCode,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerLineSlice converts a slice of line models to domain lines.
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}
