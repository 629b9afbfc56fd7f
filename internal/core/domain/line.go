package domain

import "github.com/shopspring/decimal"

// LedgerLine is one debit-or-credit component of a LedgerEntry against a
// specific account code. Lines are exclusively owned by their entry and are
// cascade-deleted with it.
//
// AccountCode is a plain chart-of-accounts code string, not a foreign key:
// the chart of accounts lives outside this core.
type LedgerLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (UUID)
	EntryID      string          `json:"entryID"` // FK -> LedgerEntry.EntryID (Not Null)
	AccountCode  string          `json:"accountCode"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`  // >= 0
	CreditAmount decimal.Decimal `json:"creditAmount"` // >= 0
	Description  string          `json:"description"`
	AuditFields
}

// IsOneSided reports whether the line carries a positive value in exactly one
// of debit/credit, with both fields non-negative.
func (l LedgerLine) IsOneSided() bool {
	if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
		return false
	}
	return l.DebitAmount.IsPositive() != l.CreditAmount.IsPositive()
}
