package services

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/dto"
)

// SequenceSvcFacade allocates gapless, formatted document numbers.
type SequenceSvcFacade interface {
	// GetNextNumber allocates the next number of (company, series) under
	// the counter row lock. Concurrent callers are serialized; numbers are
	// never duplicated.
	GetNextNumber(ctx context.Context, companyID, series string) (*dto.SequenceNumberResult, error)

	// CreateSeries provisions a new counter row.
	CreateSeries(ctx context.Context, req dto.CreateSequenceRequest) error
}
