package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	"github.com/contazen/erp_ledger_core/internal/models"
	"github.com/contazen/erp_ledger_core/internal/utils/mapping"
)

type PgxAccountMappingRepository struct {
	BaseRepository
}

// newPgxAccountMappingRepository creates a new repository for account mapping data.
func newPgxAccountMappingRepository(pool *pgxpool.Pool) portsrepo.AccountMappingRepositoryFacade {
	return &PgxAccountMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountMappingRepository implements portsrepo.AccountMappingRepositoryFacade
var _ portsrepo.AccountMappingRepositoryFacade = (*PgxAccountMappingRepository)(nil)

const selectMappingColumns = `
	mapping_id, company_id, mapping_type, account_code, account_name,
	is_default, is_active, created_at, created_by, last_updated_at, last_updated_by
`

const insertMappingQuery = `
	INSERT INTO account_mappings (
		mapping_id, company_id, mapping_type, account_code, account_name,
		is_default, is_active, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func scanMapping(row pgx.Row) (models.AccountMapping, error) {
	var m models.AccountMapping
	err := row.Scan(
		&m.MappingID,
		&m.CompanyID,
		&m.MappingType,
		&m.AccountCode,
		&m.AccountName,
		&m.IsDefault,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindActiveMapping retrieves the active mapping for (company, role). An
// administrative override (is_default false) wins over a seeded default.
func (r *PgxAccountMappingRepository) FindActiveMapping(ctx context.Context, companyID string, role domain.MappingRole) (*domain.AccountMapping, error) {
	query := `
		SELECT ` + selectMappingColumns + `
		FROM account_mappings
		WHERE company_id = $1 AND mapping_type = $2 AND is_active = TRUE
		ORDER BY is_default ASC, last_updated_at DESC
		LIMIT 1;
	`
	m, err := scanMapping(r.Pool.QueryRow(ctx, query, companyID, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mapping for company "+companyID, err)
	}
	d := mapping.ToDomainAccountMapping(m)
	return &d, nil
}

// FindMappingsByCompany retrieves all mapping rows of a company.
func (r *PgxAccountMappingRepository) FindMappingsByCompany(ctx context.Context, companyID string) ([]domain.AccountMapping, error) {
	query := `
		SELECT ` + selectMappingColumns + `
		FROM account_mappings
		WHERE company_id = $1
		ORDER BY mapping_type;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mappings for company "+companyID, err)
	}
	defer rows.Close()

	var result []domain.AccountMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account mapping", err)
		}
		result = append(result, mapping.ToDomainAccountMapping(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating mappings for company "+companyID, err)
	}
	return result, nil
}

// SaveMappings bulk-inserts mapping rows.
func (r *PgxAccountMappingRepository) SaveMappings(ctx context.Context, mappings []domain.AccountMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, d := range mappings {
			m := mapping.ToModelAccountMapping(d)
			batch.Queue(insertMappingQuery,
				m.MappingID, m.CompanyID, m.MappingType, m.AccountCode, m.AccountName,
				m.IsDefault, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range mappings {
			if _, err := results.Exec(); err != nil {
				if isUniqueViolation(err) {
					return apperrors.NewAppError(409, "mapping already exists", apperrors.ErrDuplicate)
				}
				return apperrors.NewAppError(500, "failed to insert account mapping", err)
			}
		}
		return nil
	})
}

// UpsertMapping deactivates any previous active binding of (company, role)
// and inserts the new one in a single transaction.
func (r *PgxAccountMappingRepository) UpsertMapping(ctx context.Context, d domain.AccountMapping) error {
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		deactivateQuery := `
			UPDATE account_mappings
			SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
			WHERE company_id = $3 AND mapping_type = $4 AND is_active = TRUE;
		`
		if _, err := tx.Exec(ctx, deactivateQuery,
			d.LastUpdatedAt, d.LastUpdatedBy, d.CompanyID, string(d.MappingType)); err != nil {
			return apperrors.NewAppError(500, "failed to deactivate previous mapping", err)
		}

		m := mapping.ToModelAccountMapping(d)
		if _, err := tx.Exec(ctx, insertMappingQuery,
			m.MappingID, m.CompanyID, m.MappingType, m.AccountCode, m.AccountName,
			m.IsDefault, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		); err != nil {
			return apperrors.NewAppError(500, "failed to insert account mapping", err)
		}
		return nil
	})
}

// DeactivateMapping soft-deactivates the active binding of (company, role).
func (r *PgxAccountMappingRepository) DeactivateMapping(ctx context.Context, companyID string, role domain.MappingRole, userID string) error {
	query := `
		UPDATE account_mappings
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE company_id = $3 AND mapping_type = $4 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), userID, companyID, string(role))
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate mapping for company "+companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("active mapping for " + companyID + "/" + string(role))
	}
	return nil
}
