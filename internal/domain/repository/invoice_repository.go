package repository

import (
	"context"

	"github.com/nimbusoft/invoicing-api/internal/domain/entity"
	"github.com/nimbusoft/invoicing-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Transaction hands the callback a repository bound to a single database
// transaction; all mutations performed through it commit or roll back
// together.
type InvoiceRepository interface {
	Transaction(ctx context.Context, fn func(txRepo InvoiceRepository) error) error

	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uint) (*entity.Invoice, error)
	UpdateHeader(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	CreateItem(ctx context.Context, item *entity.LineItem) error
	UpdateItem(ctx context.Context, item *entity.LineItem) error
	DeleteItemsByInvoiceID(ctx context.Context, invoiceID uint) error
	DeleteItemsNotIn(ctx context.Context, invoiceID uint, keepIDs []uint) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}
