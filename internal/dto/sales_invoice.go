package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoiceItem is one invoice position with its VAT breakdown.
type SalesInvoiceItem struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	VATRate     decimal.Decimal `json:"vatRate"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
}

// SalesInvoiceRequest is a validated sales invoice to be posted to the sales
// journal.
type SalesInvoiceRequest struct {
	InvoiceID     string             `json:"invoiceID" validate:"required"`
	CompanyID     string             `json:"companyID" validate:"required"`
	InvoiceNumber string             `json:"invoiceNumber" validate:"required"`
	IssueDate     time.Time          `json:"issueDate" validate:"required"`
	CustomerID    string             `json:"customerID" validate:"required"`
	CurrencyCode  string             `json:"currencyCode" validate:"required,len=3"`
	ExchangeRate  *decimal.Decimal   `json:"exchangeRate,omitempty"`
	Items         []SalesInvoiceItem `json:"items" validate:"required,min=1,dive"`
	NetTotal      decimal.Decimal    `json:"netTotal"`
	VATTotal      decimal.Decimal    `json:"vatTotal"`
	GrossTotal    decimal.Decimal    `json:"grossTotal"`
	ServicesOnly  bool               `json:"servicesOnly"` // Credit SALES_SERVICES instead of SALES
}
