package repository

import (
	"context"
	"errors"

	"github.com/nimbusoft/invoicing-api/internal/domain/entity"
	domainRepo "github.com/nimbusoft/invoicing-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database
// transaction. A non-nil error from fn rolls everything back.
func (r *invoiceRepository) Transaction(ctx context.Context, fn func(txRepo domainRepo.InvoiceRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&invoiceRepository{db: tx})
	})
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_items.id ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// UpdateHeader persists the invoice header only; line items are managed
// through the item methods so every mutation stays explicit.
func (r *invoiceRepository) UpdateHeader(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(client_name) LIKE LOWER(?) OR LOWER(client_email) LIKE LOWER(?)", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_items.id ASC")
		}).
		Order("id DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) CreateItem(ctx context.Context, item *entity.LineItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *invoiceRepository) UpdateItem(ctx context.Context, item *entity.LineItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *invoiceRepository) DeleteItemsByInvoiceID(ctx context.Context, invoiceID uint) error {
	return r.db.WithContext(ctx).Delete(&entity.LineItem{}, "invoice_id = ?", invoiceID).Error
}

// DeleteItemsNotIn removes every item of the invoice whose id is not in
// keepIDs. An empty keep list removes all items.
func (r *invoiceRepository) DeleteItemsNotIn(ctx context.Context, invoiceID uint, keepIDs []uint) error {
	if len(keepIDs) == 0 {
		return r.DeleteItemsByInvoiceID(ctx, invoiceID)
	}
	return r.db.WithContext(ctx).
		Where("invoice_id = ? AND id NOT IN ?", invoiceID, keepIDs).
		Delete(&entity.LineItem{}).Error
}
