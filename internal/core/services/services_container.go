package services

import (
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
)

// NewServicesContainer wires the core services from their repositories.
// audit may be nil; mappingCacheSize <= 0 uses the default.
func NewServicesContainer(repos portsrepo.RepositoryProvider, audit portssvc.AuditPublisher, mappingCacheSize int) *portssvc.ServiceProvider {
	return &portssvc.ServiceProvider{
		LedgerSvc:   NewLedgerService(repos.LedgerRepo, repos.BalanceRepo, audit),
		MappingSvc:  NewAccountMappingService(repos.MappingRepo, mappingCacheSize),
		SequenceSvc: NewSequenceService(repos.SequenceRepo),
	}
}
