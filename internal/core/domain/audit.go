package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction names the ledger operation an audit event describes.
type AuditAction string

const (
	AuditEntryCreated  AuditAction = "LEDGER_ENTRY_CREATED"
	AuditEntryReversed AuditAction = "LEDGER_ENTRY_REVERSED"
)

// AuditEvent is the payload forwarded to the external audit collaborator
// after an entry is durable. Publishing is best-effort; a failure never fails
// the entry.
type AuditEvent struct {
	Action          AuditAction     `json:"action"`
	EntryID         string          `json:"entryID"`
	CompanyID       string          `json:"companyID"`
	EntryType       EntryType       `json:"entryType"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
	UserID          string          `json:"userID,omitempty"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
