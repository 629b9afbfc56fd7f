package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	"github.com/contazen/erp_ledger_core/internal/models"
	"github.com/contazen/erp_ledger_core/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry and line data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const insertEntryQuery = `
	INSERT INTO ledger_entries (
		entry_id, company_id, franchise_id, entry_type, reference_number,
		idempotency_key, amount, description, status,
		original_entry_id, reversing_entry_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertLineQuery = `
	INSERT INTO ledger_lines (
		line_id, entry_id, account_code, debit_amount, credit_amount,
		description, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

const selectEntryColumns = `
	entry_id, company_id, franchise_id, entry_type, reference_number,
	idempotency_key, amount, description, status,
	original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *PgxLedgerRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, lines []domain.LedgerLine) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)
	_, err := tx.Exec(ctx, insertEntryQuery,
		modelEntry.EntryID,
		modelEntry.CompanyID,
		modelEntry.FranchiseID,
		modelEntry.EntryType,
		modelEntry.ReferenceNumber,
		modelEntry.IdempotencyKey,
		modelEntry.Amount,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entry violates a uniqueness constraint", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelLedgerLine(line)
		batch.Queue(insertLineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountCode,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger line for entry "+modelEntry.EntryID, err)
		}
	}
	return nil
}

// SaveEntry persists an entry and its lines atomically.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) error {
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		return r.insertEntryTx(ctx, tx, entry, lines)
	})
}

// SaveReversal persists the reversing entry and flips the original to
// REVERSED in the same transaction. The status guard on the UPDATE makes
// concurrent double reversal lose cleanly.
func (r *PgxLedgerRepository) SaveReversal(ctx context.Context, reversal domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) error {
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		if err := r.insertEntryTx(ctx, tx, reversal, lines); err != nil {
			return err
		}

		updateQuery := `
			UPDATE ledger_entries
			SET status = $1, reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE entry_id = $5 AND status = $6;
		`
		tag, err := tx.Exec(ctx, updateQuery,
			models.Reversed,
			reversal.EntryID,
			reversal.CreatedAt,
			reversal.CreatedBy,
			originalEntryID,
			models.Posted,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" as reversed", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(409, "entry "+originalEntryID+" is no longer posted", apperrors.ErrConflict)
		}
		return nil
	})
}

func (r *PgxLedgerRepository) scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.FranchiseID,
		&m.EntryType,
		&m.ReferenceNumber,
		&m.IdempotencyKey,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan ledger entry", err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindEntryByID retrieves a ledger entry without its lines.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	return r.scanEntry(r.Pool.QueryRow(ctx, query, entryID))
}

// FindEntryByIdempotencyKey retrieves a company's entry with the given key.
func (r *PgxLedgerRepository) FindEntryByIdempotencyKey(ctx context.Context, companyID, key string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM ledger_entries WHERE company_id = $1 AND idempotency_key = $2;`
	return r.scanEntry(r.Pool.QueryRow(ctx, query, companyID, key))
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT line_id, entry_id, account_code, debit_amount, credit_amount,
			description, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines for entry "+entryID, err)
	}
	defer rows.Close()

	var modelLines []models.LedgerLine
	for rows.Next() {
		var m models.LedgerLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountCode,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating ledger lines for entry "+entryID, err)
	}
	return mapping.ToDomainLedgerLineSlice(modelLines), nil
}
