package services

// ServiceProvider holds all service facades needed by callers of the ledger
// core (route handlers, other domain services).
type ServiceProvider struct {
	LedgerSvc   LedgerSvcFacade
	MappingSvc  AccountMappingSvcFacade
	SequenceSvc SequenceSvcFacade
}
