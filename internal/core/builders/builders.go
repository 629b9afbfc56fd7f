// Package builders translates typed business events into balanced ledger
// line specifications. Builders validate first and report every violation at
// once; only a clean request ever reaches the account resolver and the
// ledger core.
package builders

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/contazen/erp_ledger_core/internal/utils/accounting"
)

var oneHundred = decimal.NewFromInt(100)

// validVATRates is the Romanian VAT rate whitelist.
var validVATRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(9),
	decimal.NewFromInt(19),
}

func isAcceptedVATRate(rate decimal.Decimal) bool {
	for _, r := range validVATRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// structReasons flattens validator tag failures into human-readable reasons.
func structReasons(err error) []string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			reasons = append(reasons, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "min":
			reasons = append(reasons, fmt.Sprintf("%s must have at least %s element(s)", fe.Field(), fe.Param()))
		case "len":
			reasons = append(reasons, fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param()))
		default:
			reasons = append(reasons, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return reasons
}

// checkItemArithmetic verifies the VAT breakdown of one itemized position.
// idx is 1-based for the messages. Every failed check produces its own
// reason.
func checkItemArithmetic(idx int, quantity, unitPrice, net, rate, vat, gross decimal.Decimal) []string {
	var reasons []string

	if expected := quantity.Mul(unitPrice); !accounting.WithinTolerance(expected, net) {
		reasons = append(reasons, fmt.Sprintf(
			"item %d: quantity x unit price doesn't match net amount (expected %s, got %s)",
			idx, expected.StringFixed(2), net.StringFixed(2)))
	}
	if !isAcceptedVATRate(rate) {
		reasons = append(reasons, fmt.Sprintf(
			"item %d: VAT rate %s is not an accepted rate (0, 5, 9, 19)", idx, rate.String()))
	} else if expected := net.Mul(rate).Div(oneHundred); !accounting.WithinTolerance(expected, vat) {
		reasons = append(reasons, fmt.Sprintf(
			"item %d: VAT amount doesn't match net amount x VAT rate (expected %s, got %s)",
			idx, expected.StringFixed(2), vat.StringFixed(2)))
	}
	if expected := net.Add(vat); !accounting.WithinTolerance(expected, gross) {
		reasons = append(reasons, fmt.Sprintf(
			"item %d: net amount + VAT amount doesn't match gross amount (expected %s, got %s)",
			idx, expected.StringFixed(2), gross.StringFixed(2)))
	}

	return reasons
}
