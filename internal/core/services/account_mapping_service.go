package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
	"github.com/contazen/erp_ledger_core/internal/platform/logging"
)

const (
	// Company-specific rows change rarely; cache them for a day.
	companyMappingTTL = 24 * time.Hour
	// Fallback hits are cached shorter so a later administrative
	// configuration is picked up sooner.
	fallbackMappingTTL = time.Hour

	// DefaultMappingCacheSize bounds each of the two resolution caches.
	DefaultMappingCacheSize = 1024
)

// accountMappingService resolves logical account roles to concrete
// chart-of-accounts codes, with company overrides over jurisdiction defaults.
type accountMappingService struct {
	mappingRepo portsrepo.AccountMappingRepositoryFacade

	// Two caches because the two sources age differently.
	companyCache  *expirable.LRU[string, string]
	fallbackCache *expirable.LRU[string, string]
}

// NewAccountMappingService creates a new AccountMappingService.
// cacheSize <= 0 falls back to DefaultMappingCacheSize.
func NewAccountMappingService(mappingRepo portsrepo.AccountMappingRepositoryFacade, cacheSize int) portssvc.AccountMappingSvcFacade {
	if cacheSize <= 0 {
		cacheSize = DefaultMappingCacheSize
	}
	return &accountMappingService{
		mappingRepo:   mappingRepo,
		companyCache:  expirable.NewLRU[string, string](cacheSize, nil, companyMappingTTL),
		fallbackCache: expirable.NewLRU[string, string](cacheSize, nil, fallbackMappingTTL),
	}
}

// Ensure accountMappingService implements the facade.
var _ portssvc.AccountMappingSvcFacade = (*accountMappingService)(nil)

func cacheKey(companyID string, role domain.MappingRole) string {
	return companyID + "|" + string(role)
}

// GetAccount resolves (company, role) to an account code. It never fails:
// account resolution is not safety-critical, so any store problem falls back
// to the static jurisdiction default.
// Implements portssvc.AccountResolver.
func (s *accountMappingService) GetAccount(ctx context.Context, companyID string, role domain.MappingRole) string {
	logger := logging.FromCtx(ctx)
	key := cacheKey(companyID, role)

	if code, ok := s.companyCache.Get(key); ok {
		return code
	}
	if code, ok := s.fallbackCache.Get(key); ok {
		return code
	}

	m, err := s.mappingRepo.FindActiveMapping(ctx, companyID, role)
	switch {
	case err == nil:
		s.companyCache.Add(key, m.AccountCode)
		return m.AccountCode
	case errors.Is(err, apperrors.ErrNotFound):
		code, known := domain.DefaultAccountFor(role)
		if !known {
			logger.Error("Unknown mapping role requested", slog.String("role", string(role)), slog.String("company_id", companyID))
			return ""
		}
		s.fallbackCache.Add(key, code)
		return code
	default:
		// Store unreachable: resolve from the static table without caching,
		// so a recovered store is used again immediately.
		logger.Warn("Mapping store error, using jurisdiction default",
			slog.String("role", string(role)), slog.String("company_id", companyID), slog.String("error", err.Error()))
		code, known := domain.DefaultAccountFor(role)
		if !known {
			logger.Error("Unknown mapping role requested", slog.String("role", string(role)), slog.String("company_id", companyID))
			return ""
		}
		return code
	}
}

// ClearCache invalidates cached resolutions for a company, or everything
// when companyID is empty. Implements portssvc.AccountMappingSvcFacade.
func (s *accountMappingService) ClearCache(companyID string) {
	if companyID == "" {
		s.companyCache.Purge()
		s.fallbackCache.Purge()
		return
	}
	prefix := companyID + "|"
	for _, k := range s.companyCache.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.companyCache.Remove(k)
		}
	}
	for _, k := range s.fallbackCache.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.fallbackCache.Remove(k)
		}
	}
}

// InitializeDefaultMappings seeds a new company with the full static default
// table, skipping roles that already have rows.
// Implements portssvc.AccountMappingSvcFacade.
func (s *accountMappingService) InitializeDefaultMappings(ctx context.Context, companyID, userID string) error {
	logger := logging.FromCtx(ctx)

	existing, err := s.mappingRepo.FindMappingsByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to load existing mappings for company %s: %w", companyID, err)
	}
	seen := make(map[domain.MappingRole]struct{}, len(existing))
	for _, m := range existing {
		seen[m.MappingType] = struct{}{}
	}

	now := time.Now().UTC()
	var rows []domain.AccountMapping
	for _, d := range domain.DefaultAccountMappings {
		if _, ok := seen[d.Role]; ok {
			continue
		}
		rows = append(rows, domain.AccountMapping{
			MappingID:   uuid.NewString(),
			CompanyID:   companyID,
			MappingType: d.Role,
			AccountCode: d.AccountCode,
			AccountName: d.AccountName,
			IsDefault:   true,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	if len(rows) == 0 {
		logger.Debug("Company already has all default mappings", slog.String("company_id", companyID))
		return nil
	}

	if err := s.mappingRepo.SaveMappings(ctx, rows); err != nil {
		return fmt.Errorf("failed to seed default mappings for company %s: %w", companyID, err)
	}
	s.ClearCache(companyID)
	logger.Info("Default account mappings initialized",
		slog.String("company_id", companyID), slog.Int("count", len(rows)))
	return nil
}

// UpsertMapping applies an administrative role binding.
// Implements portssvc.AccountMappingSvcFacade.
func (s *accountMappingService) UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) error {
	if req.CompanyID == "" || req.MappingType == "" || req.AccountCode == "" {
		return apperrors.NewValidationError([]string{"company ID, mapping type and account code are required"})
	}

	now := time.Now().UTC()
	m := domain.AccountMapping{
		MappingID:   uuid.NewString(),
		CompanyID:   req.CompanyID,
		MappingType: req.MappingType,
		AccountCode: req.AccountCode,
		AccountName: req.AccountName,
		IsDefault:   false,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.mappingRepo.UpsertMapping(ctx, m); err != nil {
		return fmt.Errorf("failed to upsert mapping %s/%s: %w", req.CompanyID, req.MappingType, err)
	}
	s.ClearCache(req.CompanyID)
	return nil
}

// DeactivateMapping soft-deactivates a binding; resolution for the role
// falls back to the jurisdiction default afterwards.
// Implements portssvc.AccountMappingSvcFacade.
func (s *accountMappingService) DeactivateMapping(ctx context.Context, companyID string, role domain.MappingRole, userID string) error {
	if err := s.mappingRepo.DeactivateMapping(ctx, companyID, role, userID); err != nil {
		return err
	}
	s.ClearCache(companyID)
	return nil
}
