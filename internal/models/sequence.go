package models

import "time"

// SequenceCounter mirrors the document_sequences table. The row is the unit
// of locking for gapless number allocation.
type SequenceCounter struct {
	SequenceID string    `json:"sequenceID"`
	CompanyID  string    `json:"companyID"`
	Series     string    `json:"series"`
	Prefix     string    `json:"prefix"`
	Suffix     string    `json:"suffix"`
	Year       int       `json:"year"`
	LastNumber int64     `json:"lastNumber"`
	NextNumber int64     `json:"nextNumber"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
