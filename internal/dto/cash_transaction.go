package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransactionType is the closed set of cash-register events the cash
// builder can translate into ledger lines.
type CashTransactionType string

const (
	CashReceipt        CashTransactionType = "CASH_RECEIPT"
	CashWithdrawal     CashTransactionType = "CASH_WITHDRAWAL"
	FiscalSale         CashTransactionType = "FISCAL_SALE"
	CashSupplierPayout CashTransactionType = "SUPPLIER_PAYMENT"
	CashCount          CashTransactionType = "CASH_COUNT"
)

// CashPurpose qualifies the business purpose of a cash transaction.
type CashPurpose string

const (
	PurposeCustomerPayment CashPurpose = "CUSTOMER_PAYMENT"
	PurposeBankWithdrawal  CashPurpose = "BANK_WITHDRAWAL"
	PurposeSale            CashPurpose = "SALE"
	PurposeSupplierPayment CashPurpose = "SUPPLIER_PAYMENT"
	PurposeAdjustment      CashPurpose = "ADJUSTMENT"
)

// FiscalReceiptItem is one itemized position of a fiscal receipt, with its
// full VAT breakdown as printed.
type FiscalReceiptItem struct {
	Name        string          `json:"name" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	VATRate     decimal.Decimal `json:"vatRate"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
}

// CashTransactionRequest is a typed cash-register event to be posted to the
// ledger. For FISCAL_SALE the Items and the declared totals must reconcile.
type CashTransactionRequest struct {
	TransactionID string              `json:"transactionID" validate:"required"`
	CompanyID     string              `json:"companyID" validate:"required"`
	RegisterID    string              `json:"registerID" validate:"required"`
	ReceiptNumber string              `json:"receiptNumber" validate:"required"`
	Date          time.Time           `json:"date" validate:"required"`
	Amount        decimal.Decimal     `json:"amount"`
	Type          CashTransactionType `json:"type" validate:"required,oneof=CASH_RECEIPT CASH_WITHDRAWAL FISCAL_SALE SUPPLIER_PAYMENT CASH_COUNT"`
	Purpose       CashPurpose         `json:"purpose" validate:"required,oneof=CUSTOMER_PAYMENT BANK_WITHDRAWAL SALE SUPPLIER_PAYMENT ADJUSTMENT"`
	CurrencyCode  string              `json:"currencyCode" validate:"required,len=3"`
	ExchangeRate  *decimal.Decimal    `json:"exchangeRate,omitempty"`
	Description   string              `json:"description"`

	// Fiscal receipt breakdown (FISCAL_SALE only).
	Items      []FiscalReceiptItem `json:"items,omitempty" validate:"dive"`
	NetTotal   decimal.Decimal     `json:"netTotal"`
	VATTotal   decimal.Decimal     `json:"vatTotal"`
	GrossTotal decimal.Decimal     `json:"grossTotal"`
}
