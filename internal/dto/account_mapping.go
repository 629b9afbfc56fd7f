package dto

import "github.com/contazen/erp_ledger_core/internal/core/domain"

// UpsertMappingRequest binds (or rebinds) a logical role to an account code
// for one company. Used by administrative configuration.
type UpsertMappingRequest struct {
	CompanyID   string             `json:"companyID" validate:"required"`
	MappingType domain.MappingRole `json:"mappingType" validate:"required"`
	AccountCode string             `json:"accountCode" validate:"required"`
	AccountName string             `json:"accountName" validate:"required"`
}
