package repositories

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
)

// AccountMappingReader defines read operations for account mapping rows.
type AccountMappingReader interface {
	// FindActiveMapping retrieves the active mapping of (company, role),
	// preferring an administrative override over a seeded default.
	// Returns apperrors.ErrNotFound when the company has no row for the role.
	FindActiveMapping(ctx context.Context, companyID string, role domain.MappingRole) (*domain.AccountMapping, error)

	// FindMappingsByCompany retrieves all mapping rows of a company,
	// active or not.
	FindMappingsByCompany(ctx context.Context, companyID string) ([]domain.AccountMapping, error)
}

// AccountMappingWriter defines write operations for account mapping rows.
type AccountMappingWriter interface {
	// SaveMappings bulk-inserts mapping rows (company onboarding).
	SaveMappings(ctx context.Context, mappings []domain.AccountMapping) error

	// UpsertMapping deactivates any previous active row for (company, role)
	// and inserts the new binding, atomically.
	UpsertMapping(ctx context.Context, m domain.AccountMapping) error

	// DeactivateMapping soft-deactivates the active row for (company, role).
	DeactivateMapping(ctx context.Context, companyID string, role domain.MappingRole, userID string) error
}

// AccountMappingRepositoryFacade combines all account mapping interfaces.
type AccountMappingRepositoryFacade interface {
	AccountMappingReader
	AccountMappingWriter
}
