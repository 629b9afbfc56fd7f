package repositories

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
)

// SequenceRepositoryFacade persists gapless document number counters.
type SequenceRepositoryFacade interface {
	// AllocateNextNumber reads the counter row of (company, series) under an
	// exclusive row lock, advances it and commits, returning the counter
	// state as read plus the number allocated to this caller.
	//
	// Returns apperrors.ErrNotFound if the series does not exist and
	// apperrors.ErrConcurrencyTimeout if the lock wait exceeds its bound.
	AllocateNextNumber(ctx context.Context, companyID, series string) (counter *domain.SequenceCounter, allocated int64, err error)

	// SaveCounter provisions a new counter row. Returns
	// apperrors.ErrDuplicate when (company, series, year) already exists.
	SaveCounter(ctx context.Context, counter domain.SequenceCounter) error
}
