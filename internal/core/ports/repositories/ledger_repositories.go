package repositories

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
)

// LedgerReader defines read operations for ledger entry data.
type LedgerReader interface {
	// FindEntryByID retrieves a ledger entry by its unique identifier,
	// without lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntryByIdempotencyKey retrieves a company's entry carrying the
	// given idempotency key, or apperrors.ErrNotFound.
	FindEntryByIdempotencyKey(ctx context.Context, companyID, key string) (*domain.LedgerEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error)
}

// LedgerWriter defines write operations for ledger entry data.
type LedgerWriter interface {
	// SaveEntry persists an entry and all of its lines as a single atomic
	// unit: either every row is written or none is.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) error

	// SaveReversal persists the reversing entry and its lines, and flips the
	// original entry to REVERSED with the reversing link, all in one
	// transaction. Returns apperrors.ErrConflict if the original is no
	// longer POSTED.
	SaveReversal(ctx context.Context, reversal domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
