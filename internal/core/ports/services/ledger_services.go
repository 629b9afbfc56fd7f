package services

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/contazen/erp_ledger_core/internal/dto"
)

// LedgerWriterSvc defines the write operations of the ledger core.
type LedgerWriterSvc interface {
	// CreateEntry validates the balance invariant, persists the entry and
	// its lines atomically, and runs the best-effort post-commit steps.
	// The returned slice names any post-commit step that failed after the
	// entry was already durable.
	CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, []domain.DegradedOperation, error)

	// ReverseEntry posts the mirror entry of a previously posted entry and
	// marks the original as reversed. Returns the new entry's ID.
	ReverseEntry(ctx context.Context, companyID, entryID, reason, userID string) (string, []domain.DegradedOperation, error)
}

// LedgerReaderSvc defines the read operations of the ledger core.
type LedgerReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines populated.
	GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger core service interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
