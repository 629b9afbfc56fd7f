package accounting

import (
	"fmt"
	"strconv"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum accepted |sum(debit) - sum(credit)|
// difference for a ledger entry. Amounts arrive from callers that round to
// two decimals, so exact zero cannot be demanded.
var BalanceTolerance = decimal.RequireFromString("0.01")

// EntryBalance sums the debit and credit sides of a line set.
func EntryBalance(lines []domain.LedgerLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.DebitAmount)
		credits = credits.Add(l.CreditAmount)
	}
	return debits, credits
}

// IsBalanced reports whether the two sides agree within BalanceTolerance.
func IsBalanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}

// WithinTolerance reports whether got agrees with want within BalanceTolerance.
// Used for the per-item VAT arithmetic checks.
func WithinTolerance(want, got decimal.Decimal) bool {
	return want.Sub(got).Abs().LessThanOrEqual(BalanceTolerance)
}

// ParseAccountNumber derives the one-digit class and two-digit group from the
// leading digits of a chart-of-accounts code (Romanian synthetic account
// numbering). Not on the correctness-critical path; used for reporting.
func ParseAccountNumber(accountCode string) (class int, group int, err error) {
	if len(accountCode) < 2 {
		return 0, 0, fmt.Errorf("account code %q is too short to carry a class and group", accountCode)
	}
	class, err = strconv.Atoi(accountCode[:1])
	if err != nil {
		return 0, 0, fmt.Errorf("account code %q does not start with a digit", accountCode)
	}
	group, err = strconv.Atoi(accountCode[:2])
	if err != nil {
		return 0, 0, fmt.Errorf("account code %q does not start with two digits", accountCode)
	}
	return class, group, nil
}
