package domain

import (
	"fmt"
	"time"
)

// SequenceCounter is the persisted state of one gapless document number
// series. The row is mutated exactly once per successful allocation, inside
// the same transaction that reads it.
type SequenceCounter struct {
	SequenceID string `json:"sequenceID"` // Primary Key (UUID)
	CompanyID  string `json:"companyID"`
	Series     string `json:"series"` // e.g. "FCT", "CHT"
	Prefix     string `json:"prefix"`
	Suffix     string `json:"suffix"`
	Year       int    `json:"year"` // Fiscal year the series runs in
	LastNumber int64  `json:"lastNumber"`
	NextNumber int64  `json:"nextNumber"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FormatNumber renders an allocated number in the series' document format:
// prefix + series + number + suffix + "/" + year.
func (c SequenceCounter) FormatNumber(n int64) string {
	return fmt.Sprintf("%s%s%d%s/%d", c.Prefix, c.Series, n, c.Suffix, c.Year)
}
