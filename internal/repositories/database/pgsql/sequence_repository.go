package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	"github.com/contazen/erp_ledger_core/internal/models"
	"github.com/contazen/erp_ledger_core/internal/utils/mapping"
)

// DefaultSequenceLockTimeout bounds the wait for a counter row lock.
const DefaultSequenceLockTimeout = 5 * time.Second

type PgxSequenceRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// newPgxSequenceRepository creates a new repository for document sequence counters.
func newPgxSequenceRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.SequenceRepositoryFacade {
	if lockTimeout <= 0 {
		lockTimeout = DefaultSequenceLockTimeout
	}
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepositoryFacade
var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// AllocateNextNumber advances the counter of (company, series) for the
// current fiscal year under an exclusive row lock. The read, the gap check
// and the update commit together, so no number can be skipped or handed out
// twice.
func (r *PgxSequenceRepository) AllocateNextNumber(ctx context.Context, companyID, series string) (*domain.SequenceCounter, int64, error) {
	var counter domain.SequenceCounter
	var allocated int64

	err := r.runInTx(ctx, func(tx pgx.Tx) error {
		// SET LOCAL scopes the lock timeout to this transaction.
		setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, setTimeout); err != nil {
			return apperrors.NewAppError(500, "failed to set lock timeout", err)
		}

		selectQuery := `
			SELECT sequence_id, company_id, series, prefix, suffix, year,
				last_number, next_number, created_at, updated_at
			FROM document_sequences
			WHERE company_id = $1 AND series = $2 AND year = $3
			FOR UPDATE;
		`
		year := time.Now().UTC().Year()
		var m models.SequenceCounter
		err := tx.QueryRow(ctx, selectQuery, companyID, series, year).Scan(
			&m.SequenceID,
			&m.CompanyID,
			&m.Series,
			&m.Prefix,
			&m.Suffix,
			&m.Year,
			&m.LastNumber,
			&m.NextNumber,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError(fmt.Sprintf("sequence %s/%s/%d", companyID, series, year))
			}
			if isLockTimeout(err) {
				return apperrors.NewAppError(409, "timed out waiting for sequence "+series, apperrors.ErrConcurrencyTimeout)
			}
			return apperrors.NewAppError(500, "failed to lock sequence "+series, err)
		}

		allocated = m.NextNumber
		updateQuery := `
			UPDATE document_sequences
			SET last_number = $1, next_number = $2, updated_at = $3
			WHERE sequence_id = $4;
		`
		now := time.Now().UTC()
		if _, err := tx.Exec(ctx, updateQuery, allocated, allocated+1, now, m.SequenceID); err != nil {
			return apperrors.NewAppError(500, "failed to advance sequence "+series, err)
		}

		m.LastNumber = allocated
		m.NextNumber = allocated + 1
		m.UpdatedAt = now
		counter = mapping.ToDomainSequenceCounter(m)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &counter, allocated, nil
}

// SaveCounter provisions a new counter row.
func (r *PgxSequenceRepository) SaveCounter(ctx context.Context, d domain.SequenceCounter) error {
	m := mapping.ToModelSequenceCounter(d)
	query := `
		INSERT INTO document_sequences (
			sequence_id, company_id, series, prefix, suffix, year,
			last_number, next_number, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SequenceID, m.CompanyID, m.Series, m.Prefix, m.Suffix, m.Year,
		m.LastNumber, m.NextNumber, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409,
				fmt.Sprintf("sequence %s/%s/%d already exists", m.CompanyID, m.Series, m.Year),
				apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert sequence "+m.Series, err)
	}
	return nil
}
