package mapping

import (
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/contazen/erp_ledger_core/internal/models"
)

// ToModelAccountMapping converts a domain AccountMapping to its row model.
func ToModelAccountMapping(d domain.AccountMapping) models.AccountMapping {
	return models.AccountMapping{
		MappingID:   d.MappingID,
		CompanyID:   d.CompanyID,
		MappingType: string(d.MappingType),
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
		IsDefault:   d.IsDefault,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountMapping converts a row model to a domain AccountMapping.
func ToDomainAccountMapping(m models.AccountMapping) domain.AccountMapping {
	return domain.AccountMapping{
		MappingID:   m.MappingID,
		CompanyID:   m.CompanyID,
		MappingType: domain.MappingRole(m.MappingType),
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		IsDefault:   m.IsDefault,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
