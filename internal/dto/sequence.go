package dto

// SequenceNumberResult is the outcome of one gapless number allocation.
type SequenceNumberResult struct {
	FormattedNumber string `json:"formattedNumber"`
	NextNumber      int64  `json:"nextNumber"` // The number allocated to this caller
}

// CreateSequenceRequest provisions a new document number series for a
// company and fiscal year.
type CreateSequenceRequest struct {
	CompanyID string `json:"companyID" validate:"required"`
	Series    string `json:"series" validate:"required"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Year      int    `json:"year"` // Defaults to the current year
	StartAt   int64  `json:"startAt"` // Defaults to 1
}
