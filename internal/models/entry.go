package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a ledger entry row.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// LedgerEntry mirrors the ledger_entries table.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`
	CompanyID        string          `json:"companyID"`
	FranchiseID      *string         `json:"franchiseID"`
	EntryType        string          `json:"entryType"`
	ReferenceNumber  *string         `json:"referenceNumber"`
	IdempotencyKey   *string         `json:"idempotencyKey"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Status           EntryStatus     `json:"status"`
	OriginalEntryID  *string         `json:"originalEntryID"`
	ReversingEntryID *string         `json:"reversingEntryID"`
	AuditFields
}

// AuditFields holds the standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
