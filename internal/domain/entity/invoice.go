package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents an invoice header with its owned line items.
// Monetary totals (subtotal, VAT amount, total amount) are never stored;
// they are recomputed from the items on every read.
type Invoice struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientName  string          `gorm:"size:255;not null" json:"client_name"`
	ClientEmail string          `gorm:"size:255;not null" json:"client_email"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:21.00" json:"vat_rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Items []LineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// LineItem represents a single quantity x unit-price position on an invoice
type LineItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}
