package domain

import (
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry by the journal it belongs to.
type EntryType string

const (
	EntrySales      EntryType = "SALES"
	EntryPurchase   EntryType = "PURCHASE"
	EntryBank       EntryType = "BANK"
	EntryCash       EntryType = "CASH"
	EntryGeneral    EntryType = "GENERAL"
	EntryAdjustment EntryType = "ADJUSTMENT"
	EntryReversal   EntryType = "REVERSAL"
)

// IsValid reports whether t is one of the closed set of entry types.
func (t EntryType) IsValid() bool {
	switch t {
	case EntrySales, EntryPurchase, EntryBank, EntryCash, EntryGeneral, EntryAdjustment, EntryReversal:
		return true
	}
	return false
}

// EntryStatus indicates the state of a ledger entry.
type EntryStatus string

const (
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

// LedgerEntry represents a single, balanced accounting transaction owned by a company.
// Immutable once created except for the reversal linkage.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`                   // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`                 // Owning company (Not Null)
	FranchiseID     *string         `json:"franchiseID,omitempty"`     // Optional sub-unit
	EntryType       EntryType       `json:"entryType"`                 // SALES, CASH, etc.
	ReferenceNumber *string         `json:"referenceNumber,omitempty"` // External document number
	IdempotencyKey  *string         `json:"idempotencyKey,omitempty"`  // Optional client retry guard
	Amount          decimal.Decimal `json:"amount"`                    // Economic value of the entry
	Description     string          `json:"description"`
	Status          EntryStatus     `json:"status"` // Default: POSTED
	// Reversal linkage: set on the reversing entry and the reversed original respectively.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`
	AuditFields
	Lines []LedgerLine `json:"lines,omitempty"` // Loaded on demand
}

// DegradedOperation records a best-effort post-commit step that failed after
// the entry was already durable. Callers can assert on these without the
// primary operation having failed.
type DegradedOperation struct {
	Step   string `json:"step"` // e.g. "balance_projection", "audit_publish"
	Reason string `json:"reason"`
}
