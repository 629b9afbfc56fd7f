package models

import "github.com/shopspring/decimal"

// LedgerLine mirrors the ledger_lines table. account_code is a plain string,
// not a foreign key: the chart of accounts lives outside this schema.
type LedgerLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountCode  string          `json:"accountCode"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	AuditFields
}
