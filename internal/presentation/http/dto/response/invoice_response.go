package response

import (
	"github.com/nimbusoft/invoicing-api/internal/application/service"
	"github.com/nimbusoft/invoicing-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// InvoiceItemView is the serialized form of a line item, including its
// derived total price
type InvoiceItemView struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceView is the serialized form of an invoice with its computed
// totals. Totals are derived per response, never read from storage.
type InvoiceView struct {
	ID          uint              `json:"id"`
	ClientName  string            `json:"client_name"`
	ClientEmail string            `json:"client_email"`
	Date        string            `json:"date"`
	DueDate     string            `json:"due_date"`
	VATRate     decimal.Decimal   `json:"vat_rate"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	VATAmount   decimal.Decimal   `json:"vat_amount"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []InvoiceItemView `json:"items"`
}

// NewInvoiceView builds the response view for a single invoice
func NewInvoiceView(invoice *entity.Invoice) InvoiceView {
	totals := service.InvoiceTotals(invoice)

	items := make([]InvoiceItemView, len(invoice.Items))
	for i := range invoice.Items {
		item := &invoice.Items[i]
		items[i] = InvoiceItemView{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  service.LineTotal(item),
		}
	}

	return InvoiceView{
		ID:          invoice.ID,
		ClientName:  invoice.ClientName,
		ClientEmail: invoice.ClientEmail,
		Date:        invoice.Date.Format(dateLayout),
		DueDate:     invoice.DueDate.Format(dateLayout),
		VATRate:     invoice.VATRate,
		Subtotal:    totals.Subtotal,
		VATAmount:   totals.VATAmount,
		TotalAmount: totals.TotalAmount,
		Items:       items,
	}
}

// NewInvoiceViews builds response views for a list of invoices
func NewInvoiceViews(invoices []entity.Invoice) []InvoiceView {
	views := make([]InvoiceView, len(invoices))
	for i := range invoices {
		views[i] = NewInvoiceView(&invoices[i])
	}
	return views
}
