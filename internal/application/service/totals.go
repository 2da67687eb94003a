package service

import (
	"github.com/nimbusoft/invoicing-api/internal/domain/entity"
	"github.com/nimbusoft/invoicing-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Totals holds the derived monetary fields of an invoice. They are pure
// functions of the stored state and are recomputed on every read, never
// persisted.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// LineTotal computes the rounded total price of a single line item
func LineTotal(item *entity.LineItem) decimal.Decimal {
	return money.LineTotal(item.Quantity, item.UnitPrice)
}

// InvoiceTotals derives subtotal, VAT amount and grand total from an
// invoice and its items. Each line total is rounded to 2 places before
// summing, and the VAT and grand total are rounded again on top of the
// rounded subtotal. The two rounding stages are deliberate: per-line
// rounding matches how each position is billed, so results can differ
// from a single end-rounding for repeating fractions.
func InvoiceTotals(invoice *entity.Invoice) Totals {
	subtotal := money.Zero
	for i := range invoice.Items {
		subtotal = subtotal.Add(LineTotal(&invoice.Items[i]))
	}

	vatAmount := money.Percent(subtotal, invoice.VATRate)
	totalAmount := money.Round2(subtotal.Add(vatAmount))

	return Totals{
		Subtotal:    subtotal,
		VATAmount:   vatAmount,
		TotalAmount: totalAmount,
	}
}
