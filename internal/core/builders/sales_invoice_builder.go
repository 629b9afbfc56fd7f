package builders

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
	"github.com/contazen/erp_ledger_core/internal/utils/accounting"
)

// SalesInvoiceBuilder turns issued sales invoices into balanced entry drafts
// for the sales journal.
type SalesInvoiceBuilder struct {
	accounts portssvc.AccountResolver
	validate *validator.Validate
}

func NewSalesInvoiceBuilder(accounts portssvc.AccountResolver) *SalesInvoiceBuilder {
	return &SalesInvoiceBuilder{
		accounts: accounts,
		validate: validator.New(),
	}
}

// Build validates the invoice and produces the standard sales posting:
// customer receivable at gross against revenue at net and collected VAT.
// Returns a ValidationError carrying every violation when the invoice is
// rejected.
func (b *SalesInvoiceBuilder) Build(ctx context.Context, req dto.SalesInvoiceRequest) (*dto.EntryDraft, error) {
	if reasons := b.validateRequest(req); len(reasons) > 0 {
		return nil, apperrors.NewValidationError(reasons)
	}

	customers := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleCustomers)
	revenueRole := domain.RoleSales
	if req.ServicesOnly {
		revenueRole = domain.RoleSalesServices
	}
	revenue := b.accounts.GetAccount(ctx, req.CompanyID, revenueRole)

	lines := []dto.LedgerLineInput{
		{AccountCode: customers, Debit: req.GrossTotal, Description: fmt.Sprintf("Receivable for invoice %s", req.InvoiceNumber)},
		{AccountCode: revenue, Credit: req.NetTotal, Description: "Invoice revenue"},
	}
	if req.VATTotal.IsPositive() {
		vat := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleVATCollected)
		lines = append(lines, dto.LedgerLineInput{
			AccountCode: vat, Credit: req.VATTotal, Description: "VAT collected",
		})
	}

	reference := req.InvoiceNumber
	idempotencyKey := req.InvoiceID
	return &dto.EntryDraft{
		CompanyID:       req.CompanyID,
		EntryType:       domain.EntrySales,
		ReferenceNumber: &reference,
		IdempotencyKey:  &idempotencyKey,
		Amount:          req.GrossTotal,
		Description:     fmt.Sprintf("Sales invoice %s", req.InvoiceNumber),
		Lines:           lines,
	}, nil
}

func (b *SalesInvoiceBuilder) validateRequest(req dto.SalesInvoiceRequest) []string {
	reasons := structReasons(b.validate.Struct(req))

	if !req.GrossTotal.IsPositive() {
		reasons = append(reasons, "gross total must be positive")
	}
	if req.NetTotal.IsNegative() {
		reasons = append(reasons, "net total cannot be negative")
	}
	if req.VATTotal.IsNegative() {
		reasons = append(reasons, "VAT total cannot be negative")
	}
	if req.CurrencyCode != "" && req.CurrencyCode != "RON" {
		if req.ExchangeRate == nil || !req.ExchangeRate.IsPositive() {
			reasons = append(reasons, fmt.Sprintf("a positive exchange rate is required for currency %s", req.CurrencyCode))
		}
	}

	sumNet, sumVAT, sumGross := decimal.Zero, decimal.Zero, decimal.Zero
	for i, item := range req.Items {
		reasons = append(reasons, checkItemArithmetic(
			i+1, item.Quantity, item.UnitPrice, item.NetAmount, item.VATRate, item.VATAmount, item.GrossAmount)...)
		sumNet = sumNet.Add(item.NetAmount)
		sumVAT = sumVAT.Add(item.VATAmount)
		sumGross = sumGross.Add(item.GrossAmount)
	}
	if len(req.Items) > 0 {
		if !accounting.WithinTolerance(sumNet, req.NetTotal) {
			reasons = append(reasons, fmt.Sprintf(
				"sum of item net amounts %s doesn't match declared net total %s",
				sumNet.StringFixed(2), req.NetTotal.StringFixed(2)))
		}
		if !accounting.WithinTolerance(sumVAT, req.VATTotal) {
			reasons = append(reasons, fmt.Sprintf(
				"sum of item VAT amounts %s doesn't match declared VAT total %s",
				sumVAT.StringFixed(2), req.VATTotal.StringFixed(2)))
		}
		if !accounting.WithinTolerance(sumGross, req.GrossTotal) {
			reasons = append(reasons, fmt.Sprintf(
				"sum of item gross amounts %s doesn't match declared gross total %s",
				sumGross.StringFixed(2), req.GrossTotal.StringFixed(2)))
		}
	}
	if !accounting.WithinTolerance(req.NetTotal.Add(req.VATTotal), req.GrossTotal) {
		reasons = append(reasons, fmt.Sprintf(
			"declared net total + VAT total %s doesn't match declared gross total %s",
			req.NetTotal.Add(req.VATTotal).StringFixed(2), req.GrossTotal.StringFixed(2)))
	}

	return reasons
}
