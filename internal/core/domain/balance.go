package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodBalance is one row of the running-balance projection: per company,
// account code and accounting period (year/month). It is maintained
// best-effort after entry commit and is not atomically consistent with entry
// insertion.
type PeriodBalance struct {
	CompanyID     string          `json:"companyID"`
	AccountCode   string          `json:"accountCode"`
	PeriodYear    int             `json:"periodYear"`
	PeriodMonth   int             `json:"periodMonth"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BalanceDelta is the per-account debit/credit aggregate of one entry's
// lines, fed into the period balance projection.
type BalanceDelta struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}
