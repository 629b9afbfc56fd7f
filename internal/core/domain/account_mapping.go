package domain

// MappingRole is a logical account role that companies bind to a concrete
// chart-of-accounts code. The set is closed: builders only ever resolve roles
// from this list.
type MappingRole string

const (
	RoleCashRON           MappingRole = "CASH_RON"
	RoleCashCurrency      MappingRole = "CASH_CURRENCY"
	RoleBankRON           MappingRole = "BANK_RON"
	RoleBankCurrency      MappingRole = "BANK_CURRENCY"
	RoleCustomers         MappingRole = "CUSTOMERS"
	RoleSuppliers         MappingRole = "SUPPLIERS"
	RoleVATCollected      MappingRole = "VAT_COLLECTED"
	RoleVATDeductible     MappingRole = "VAT_DEDUCTIBLE"
	RoleSales             MappingRole = "SALES"
	RoleSalesServices     MappingRole = "SALES_SERVICES"
	RoleInternalTransfers MappingRole = "INTERNAL_TRANSFERS"
	RoleCashShortage      MappingRole = "CASH_SHORTAGE"
	RoleCashOverage       MappingRole = "CASH_OVERAGE"
)

// AccountMapping binds a logical role to a chart-of-accounts code for one
// company. Rows are soft-deactivated, never hard-deleted in normal flow.
type AccountMapping struct {
	MappingID   string      `json:"mappingID"` // Primary Key (UUID)
	CompanyID   string      `json:"companyID"`
	MappingType MappingRole `json:"mappingType"`
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	IsDefault   bool        `json:"isDefault"` // Seeded at onboarding
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// DefaultMapping is one row of the static jurisdiction default table.
type DefaultMapping struct {
	Role        MappingRole
	AccountCode string
	AccountName string
}

// DefaultAccountMappings is the Romanian chart-of-accounts default binding,
// used to seed a company at onboarding and as the fallback when a company has
// no explicit mapping for a role.
var DefaultAccountMappings = []DefaultMapping{
	{RoleCashRON, "5311", "Casa in lei"},
	{RoleCashCurrency, "5314", "Casa in valuta"},
	{RoleBankRON, "5121", "Conturi la banci in lei"},
	{RoleBankCurrency, "5124", "Conturi la banci in valuta"},
	{RoleCustomers, "4111", "Clienti"},
	{RoleSuppliers, "401", "Furnizori"},
	{RoleVATCollected, "4427", "TVA colectata"},
	{RoleVATDeductible, "4426", "TVA deductibila"},
	{RoleSales, "707", "Venituri din vanzarea marfurilor"},
	{RoleSalesServices, "704", "Venituri din servicii prestate"},
	{RoleInternalTransfers, "581", "Viramente interne"},
	{RoleCashShortage, "6588", "Alte cheltuieli de exploatare"},
	{RoleCashOverage, "7588", "Alte venituri din exploatare"},
}

// DefaultAccountFor returns the static default account code for a role, and
// whether the role is known.
func DefaultAccountFor(role MappingRole) (string, bool) {
	for _, m := range DefaultAccountMappings {
		if m.Role == role {
			return m.AccountCode, true
		}
	}
	return "", false
}
