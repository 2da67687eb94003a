package request

import "github.com/shopspring/decimal"

// CreateInvoiceRequest represents an invoice creation request. The
// issue date is assigned by the server; callers only supply the due
// date. The items key must be present; an explicit empty list creates
// an invoice without items.
type CreateInvoiceRequest struct {
	ClientName  string                      `json:"client_name" binding:"required,max=255"`
	ClientEmail string                      `json:"client_email" binding:"required,email"`
	DueDate     string                      `json:"due_date" binding:"required"`
	VATRate     *decimal.Decimal            `json:"vat_rate"`
	Items       *[]CreateInvoiceItemRequest `json:"items" binding:"required"`
}

// CreateInvoiceItemRequest represents a line item in a creation request
type CreateInvoiceItemRequest struct {
	Description string           `json:"description" binding:"required"`
	Quantity    *int             `json:"quantity" binding:"required,gte=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateInvoiceRequest represents an invoice update request. Header
// fields are optional; absent fields keep their stored values. When the
// items list is present it is authoritative: stored items it does not
// reference are deleted.
type UpdateInvoiceRequest struct {
	ClientName  *string                     `json:"client_name" binding:"omitempty,min=1,max=255"`
	ClientEmail *string                     `json:"client_email" binding:"omitempty,email"`
	DueDate     *string                     `json:"due_date"`
	VATRate     *decimal.Decimal            `json:"vat_rate"`
	Items       *[]UpdateInvoiceItemRequest `json:"items"`
}

// UpdateInvoiceItemRequest represents one entry of the submitted item
// list. With an id it patches the identified item; without one a new
// item is created.
type UpdateInvoiceItemRequest struct {
	ID          *uint            `json:"id"`
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// InvoiceFilterRequest represents invoice list query parameters
type InvoiceFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
