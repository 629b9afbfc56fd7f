package dto

import (
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLineInput is one debit-or-credit line of a new entry. Exactly one of
// Debit/Credit must be positive.
type LedgerLineInput struct {
	AccountCode string          `json:"accountCode" validate:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateLedgerEntryRequest is the payload for posting a new ledger entry.
type CreateLedgerEntryRequest struct {
	CompanyID       string            `json:"companyID" validate:"required"`
	FranchiseID     *string           `json:"franchiseID,omitempty"`
	EntryType       domain.EntryType  `json:"entryType" validate:"required"`
	ReferenceNumber *string           `json:"referenceNumber,omitempty"`
	IdempotencyKey  *string           `json:"idempotencyKey,omitempty"`
	Amount          decimal.Decimal   `json:"amount"`
	Description     string            `json:"description" validate:"required"`
	Lines           []LedgerLineInput `json:"lines" validate:"required,min=1,dive"`
}

// EntryDraft is the output of a domain line builder: everything the ledger
// core needs besides the creator, ready to be submitted as a
// CreateLedgerEntryRequest.
type EntryDraft struct {
	CompanyID       string
	EntryType       domain.EntryType
	ReferenceNumber *string
	IdempotencyKey  *string
	Amount          decimal.Decimal
	Description     string
	Lines           []LedgerLineInput
}

// ToCreateRequest converts a draft into the ledger core request shape.
func (d EntryDraft) ToCreateRequest() CreateLedgerEntryRequest {
	return CreateLedgerEntryRequest{
		CompanyID:       d.CompanyID,
		EntryType:       d.EntryType,
		ReferenceNumber: d.ReferenceNumber,
		IdempotencyKey:  d.IdempotencyKey,
		Amount:          d.Amount,
		Description:     d.Description,
		Lines:           d.Lines,
	}
}
