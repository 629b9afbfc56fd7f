package services

import (
	"context"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/contazen/erp_ledger_core/internal/dto"
)

// AccountResolver resolves a logical account role to a concrete
// chart-of-accounts code. This is the only part of the mapping service the
// domain line builders depend on.
type AccountResolver interface {
	// GetAccount never fails: on any store problem it falls back to the
	// static jurisdiction default for the role.
	GetAccount(ctx context.Context, companyID string, role domain.MappingRole) string
}

// AccountMappingSvcFacade is the full account mapping service surface.
type AccountMappingSvcFacade interface {
	AccountResolver

	// ClearCache invalidates cached resolutions for one company, or all
	// companies when companyID is empty. Called after mapping mutations.
	ClearCache(companyID string)

	// InitializeDefaultMappings seeds the static default table as a
	// company's initial mapping rows at onboarding.
	InitializeDefaultMappings(ctx context.Context, companyID, userID string) error

	// UpsertMapping applies an administrative binding and invalidates the
	// company's cache.
	UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) error

	// DeactivateMapping soft-deactivates a binding and invalidates the
	// company's cache; resolution falls back to the static default.
	DeactivateMapping(ctx context.Context, companyID string, role domain.MappingRole, userID string) error
}
