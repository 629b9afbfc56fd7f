package models

// AccountMapping mirrors the account_mappings table.
type AccountMapping struct {
	MappingID   string `json:"mappingID"`
	CompanyID   string `json:"companyID"`
	MappingType string `json:"mappingType"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	IsDefault   bool   `json:"isDefault"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
