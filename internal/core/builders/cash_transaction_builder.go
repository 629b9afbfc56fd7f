package builders

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
	"github.com/contazen/erp_ledger_core/internal/utils/accounting"
)

// CashTransactionBuilder turns cash-register events into balanced entry
// drafts. Validation is two-layered: structural checks first, then the
// arithmetic of the fiscal receipt breakdown. All violations of a request are
// collected and reported together.
type CashTransactionBuilder struct {
	accounts portssvc.AccountResolver
	validate *validator.Validate
}

func NewCashTransactionBuilder(accounts portssvc.AccountResolver) *CashTransactionBuilder {
	return &CashTransactionBuilder{
		accounts: accounts,
		validate: validator.New(),
	}
}

// Build validates the cash event and produces an entry draft with the ledger
// lines the event implies. Returns a ValidationError carrying every violation
// when the request is rejected.
func (b *CashTransactionBuilder) Build(ctx context.Context, req dto.CashTransactionRequest) (*dto.EntryDraft, error) {
	if reasons := b.validateRequest(req); len(reasons) > 0 {
		return nil, apperrors.NewValidationError(reasons)
	}

	lines, amount, description, err := b.buildLines(ctx, req)
	if err != nil {
		return nil, err
	}

	reference := req.ReceiptNumber
	idempotencyKey := req.TransactionID
	return &dto.EntryDraft{
		CompanyID:       req.CompanyID,
		EntryType:       domain.EntryCash,
		ReferenceNumber: &reference,
		IdempotencyKey:  &idempotencyKey,
		Amount:          amount,
		Description:     description,
		Lines:           lines,
	}, nil
}

func (b *CashTransactionBuilder) validateRequest(req dto.CashTransactionRequest) []string {
	reasons := structReasons(b.validate.Struct(req))

	// Cash documents are day-bound: the register report is posted on the day
	// it was produced, neither earlier nor later.
	if !req.Date.IsZero() {
		today := time.Now().UTC()
		ty, tm, td := today.Date()
		ry, rm, rd := req.Date.UTC().Date()
		switch {
		case ry > ty || (ry == ty && (rm > tm || (rm == tm && rd > td))):
			reasons = append(reasons, "transaction date cannot be in the future")
		case ry != ty || rm != tm || rd != td:
			reasons = append(reasons, "cash transactions must be posted on the transaction date")
		}
	}

	if req.Type == dto.CashCount {
		if req.Amount.IsZero() {
			reasons = append(reasons, "cash count adjustment amount cannot be zero")
		}
	} else if !req.Amount.IsPositive() {
		reasons = append(reasons, "amount must be positive")
	}

	if req.CurrencyCode != "" && req.CurrencyCode != "RON" {
		if req.ExchangeRate == nil || !req.ExchangeRate.IsPositive() {
			reasons = append(reasons, fmt.Sprintf("a positive exchange rate is required for currency %s", req.CurrencyCode))
		}
	}

	if req.Type == dto.FiscalSale {
		reasons = append(reasons, b.validateFiscalBreakdown(req)...)
	}

	return reasons
}

// validateFiscalBreakdown checks every itemized position and the declared
// totals of a fiscal receipt.
func (b *CashTransactionBuilder) validateFiscalBreakdown(req dto.CashTransactionRequest) []string {
	var reasons []string

	if len(req.Items) == 0 {
		return append(reasons, "a fiscal sale requires at least one receipt item")
	}

	sumNet, sumVAT, sumGross := decimal.Zero, decimal.Zero, decimal.Zero
	for i, item := range req.Items {
		reasons = append(reasons, checkItemArithmetic(
			i+1, item.Quantity, item.UnitPrice, item.NetAmount, item.VATRate, item.VATAmount, item.GrossAmount)...)
		sumNet = sumNet.Add(item.NetAmount)
		sumVAT = sumVAT.Add(item.VATAmount)
		sumGross = sumGross.Add(item.GrossAmount)
	}

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
	if !accounting.WithinTolerance(req.NetTotal.Add(req.VATTotal), req.GrossTotal) {
		reasons = append(reasons, fmt.Sprintf(
			"declared net total + VAT total %s doesn't match declared gross total %s",
			req.NetTotal.Add(req.VATTotal).StringFixed(2), req.GrossTotal.StringFixed(2)))
	}

	return reasons
}

// cashRole picks the register account role by transaction currency.
func (b *CashTransactionBuilder) cashRole(req dto.CashTransactionRequest) domain.MappingRole {
	if req.CurrencyCode == "RON" {
		return domain.RoleCashRON
	}
	return domain.RoleCashCurrency
}

func (b *CashTransactionBuilder) buildLines(ctx context.Context, req dto.CashTransactionRequest) ([]dto.LedgerLineInput, decimal.Decimal, string, error) {
	cashAccount := b.accounts.GetAccount(ctx, req.CompanyID, b.cashRole(req))

	switch req.Type {
	case dto.CashReceipt:
		customers := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleCustomers)
		lines := []dto.LedgerLineInput{
			{AccountCode: cashAccount, Debit: req.Amount, Description: "Cash received"},
			{AccountCode: customers, Credit: req.Amount, Description: "Customer payment settled"},
		}
		return lines, req.Amount, fmt.Sprintf("Cash receipt %s", req.ReceiptNumber), nil

	case dto.CashWithdrawal:
		transfers := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleInternalTransfers)
		lines := []dto.LedgerLineInput{
			{AccountCode: cashAccount, Debit: req.Amount, Description: "Cash withdrawn from bank"},
			{AccountCode: transfers, Credit: req.Amount, Description: "Internal transfer in transit"},
		}
		return lines, req.Amount, fmt.Sprintf("Cash withdrawal %s", req.ReceiptNumber), nil

	case dto.FiscalSale:
		lines := []dto.LedgerLineInput{
			{AccountCode: cashAccount, Debit: req.GrossTotal, Description: "Fiscal receipt gross"},
		}
		sales := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleSales)
		lines = append(lines, dto.LedgerLineInput{
			AccountCode: sales, Credit: req.NetTotal, Description: "Sales revenue",
		})
		if req.VATTotal.IsPositive() {
			vat := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleVATCollected)
			lines = append(lines, dto.LedgerLineInput{
				AccountCode: vat, Credit: req.VATTotal, Description: "VAT collected",
			})
		}
		return lines, req.GrossTotal, fmt.Sprintf("Fiscal receipt %s", req.ReceiptNumber), nil

	case dto.CashSupplierPayout:
		suppliers := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleSuppliers)
		lines := []dto.LedgerLineInput{
			{AccountCode: suppliers, Debit: req.Amount, Description: "Supplier paid in cash"},
			{AccountCode: cashAccount, Credit: req.Amount, Description: "Cash paid out"},
		}
		return lines, req.Amount, fmt.Sprintf("Supplier payment %s", req.ReceiptNumber), nil

	case dto.CashCount:
		// A positive difference is an overage (more cash than booked), a
		// negative one is a shortage.
		diff := req.Amount.Abs()
		if req.Amount.IsPositive() {
			overage := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleCashOverage)
			lines := []dto.LedgerLineInput{
				{AccountCode: cashAccount, Debit: diff, Description: "Cash count overage"},
				{AccountCode: overage, Credit: diff, Description: "Other operating income"},
			}
			return lines, diff, fmt.Sprintf("Cash count adjustment %s", req.ReceiptNumber), nil
		}
		shortage := b.accounts.GetAccount(ctx, req.CompanyID, domain.RoleCashShortage)
		lines := []dto.LedgerLineInput{
			{AccountCode: shortage, Debit: diff, Description: "Other operating expense"},
			{AccountCode: cashAccount, Credit: diff, Description: "Cash count shortage"},
		}
		return lines, diff, fmt.Sprintf("Cash count adjustment %s", req.ReceiptNumber), nil

	default:
		return nil, decimal.Zero, "", apperrors.NewValidationError(
			[]string{fmt.Sprintf("unsupported cash transaction type %s", req.Type)})
	}
}
