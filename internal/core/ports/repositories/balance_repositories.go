package repositories

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
)

// BalanceRepositoryFacade maintains the best-effort period balance
// projection. Not atomically consistent with entry insertion by design.
type BalanceRepositoryFacade interface {
	// ApplyEntryDeltas adds one entry's per-account debit/credit aggregates
	// to the matching (company, account, year, month) period rows, creating
	// them as needed.
	ApplyEntryDeltas(ctx context.Context, companyID string, year, month int, deltas map[string]domain.BalanceDelta) error

	// FindPeriodBalance retrieves one projection row, or apperrors.ErrNotFound.
	FindPeriodBalance(ctx context.Context, companyID, accountCode string, year, month int) (*domain.PeriodBalance, error)
}
