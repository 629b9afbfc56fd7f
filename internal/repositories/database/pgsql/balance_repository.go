package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for the period balance projection.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBalanceRepository implements portsrepo.BalanceRepositoryFacade
var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// ApplyEntryDeltas folds one entry's per-account aggregates into the period
// rows. Upsert keeps the projection idempotent per call site but not per
// entry; the projection is best-effort and rebuildable from the entries.
func (r *PgxBalanceRepository) ApplyEntryDeltas(ctx context.Context, companyID string, year, month int, deltas map[string]domain.BalanceDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	query := `
		INSERT INTO account_balances (
			company_id, account_code, period_year, period_month,
			opening_debit, opening_credit, period_debit, period_credit,
			closing_debit, closing_credit, updated_at
		)
		VALUES ($1, $2, $3, $4, 0, 0, $5, $6, $5, $6, NOW())
		ON CONFLICT (company_id, account_code, period_year, period_month)
		DO UPDATE SET
			period_debit = account_balances.period_debit + EXCLUDED.period_debit,
			period_credit = account_balances.period_credit + EXCLUDED.period_credit,
			closing_debit = account_balances.closing_debit + EXCLUDED.period_debit,
			closing_credit = account_balances.closing_credit + EXCLUDED.period_credit,
			updated_at = NOW();
	`
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for accountCode, delta := range deltas {
			batch.Queue(query, companyID, accountCode, year, month, delta.Debit, delta.Credit)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range deltas {
			if _, err := results.Exec(); err != nil {
				return apperrors.NewAppError(500, "failed to upsert period balance", err)
			}
		}
		return nil
	})
}

// FindPeriodBalance retrieves one projection row.
func (r *PgxBalanceRepository) FindPeriodBalance(ctx context.Context, companyID, accountCode string, year, month int) (*domain.PeriodBalance, error) {
	query := `
		SELECT company_id, account_code, period_year, period_month,
			opening_debit, opening_credit, period_debit, period_credit,
			closing_debit, closing_credit, updated_at
		FROM account_balances
		WHERE company_id = $1 AND account_code = $2 AND period_year = $3 AND period_month = $4;
	`
	var b domain.PeriodBalance
	err := r.Pool.QueryRow(ctx, query, companyID, accountCode, year, month).Scan(
		&b.CompanyID,
		&b.AccountCode,
		&b.PeriodYear,
		&b.PeriodMonth,
		&b.OpeningDebit,
		&b.OpeningCredit,
		&b.PeriodDebit,
		&b.PeriodCredit,
		&b.ClosingDebit,
		&b.ClosingCredit,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period balance", err)
	}
	return &b, nil
}
