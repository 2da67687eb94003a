package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbusoft/invoicing-api/internal/domain/entity"
	"github.com/nimbusoft/invoicing-api/internal/domain/repository"
	"github.com/nimbusoft/invoicing-api/pkg/apperror"
	"github.com/nimbusoft/invoicing-api/pkg/money"
	"github.com/nimbusoft/invoicing-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DefaultVATRate applies when an invoice is created without an explicit rate
var DefaultVATRate = decimal.New(21, 0)

// InvoiceService handles invoice CRUD, total derivation and the
// reconciliation of submitted line items against stored rows.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// ItemInput represents a line item specification for invoice creation
type ItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	ClientName  string
	ClientEmail string
	DueDate     time.Time
	VATRate     *decimal.Decimal
	Items       []ItemInput
}

// ItemPatch represents one entry of the item list submitted on update.
// A set ID mutates the identified item in place; absent fields keep
// their stored values. Without an ID a new item is created, and then
// description, quantity and unit price are all required.
type ItemPatch struct {
	ID          *uint
	Description *string
	Quantity    *int
	UnitPrice   *decimal.Decimal
}

// UpdateInvoiceInput represents the input for updating an invoice.
// Header fields are patch semantics: nil keeps the stored value. A nil
// Items slice leaves the item list untouched; a non-nil slice is
// authoritative, so stored items it does not reference are deleted.
type UpdateInvoiceInput struct {
	ClientName  *string
	ClientEmail *string
	DueDate     *time.Time
	VATRate     *decimal.Decimal
	Items       *[]ItemPatch
}

// CreateInvoice creates an invoice together with its initial line items.
// All validation happens before any store call; the invoice row and its
// items are written in a single transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	var fieldErrs []apperror.FieldError

	vatRate := DefaultVATRate
	if input.VATRate != nil {
		vatRate = *input.VATRate
	}
	if err := validateVATRate(vatRate); err != nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "vat_rate", Message: err.Error()})
	}

	for i, item := range input.Items {
		fieldErrs = append(fieldErrs, validateItemSpec(i, item.Quantity, item.UnitPrice)...)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	invoice := &entity.Invoice{
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		Date:        time.Now().UTC(),
		DueDate:     input.DueDate,
		VATRate:     vatRate,
	}

	err := s.invoiceRepo.Transaction(ctx, func(tx repository.InvoiceRepository) error {
		if err := tx.Create(ctx, invoice); err != nil {
			return err
		}
		for _, spec := range input.Items {
			item := &entity.LineItem{
				InvoiceID:   invoice.ID,
				Description: spec.Description,
				Quantity:    spec.Quantity,
				UnitPrice:   spec.UnitPrice,
			}
			if err := tx.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// ListInvoices lists invoices newest first, items preloaded
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoice applies a header patch and reconciles the submitted item
// list against the stored one: specs with an id mutate that item in
// place, specs without an id create a new item, and stored items the
// list does not reference are deleted. Everything runs in one
// transaction after all validation has passed.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uint, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	owned := make(map[uint]entity.LineItem, len(invoice.Items))
	for _, item := range invoice.Items {
		owned[item.ID] = item
	}

	var fieldErrs []apperror.FieldError

	if input.VATRate != nil {
		if err := validateVATRate(*input.VATRate); err != nil {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "vat_rate", Message: err.Error()})
		}
	}

	if input.Items != nil {
		for i, spec := range *input.Items {
			if spec.ID != nil {
				if _, ok := owned[*spec.ID]; !ok {
					fieldErrs = append(fieldErrs, apperror.FieldError{
						Field:   fmt.Sprintf("items[%d].id", i),
						Message: fmt.Sprintf("line item %d does not belong to this invoice", *spec.ID),
					})
					continue
				}
			} else {
				if spec.Description == nil || spec.Quantity == nil || spec.UnitPrice == nil {
					fieldErrs = append(fieldErrs, apperror.FieldError{
						Field:   fmt.Sprintf("items[%d]", i),
						Message: "description, quantity and unit_price are required for new items",
					})
					continue
				}
			}
			if spec.Quantity != nil && *spec.Quantity < 0 {
				fieldErrs = append(fieldErrs, apperror.FieldError{
					Field:   fmt.Sprintf("items[%d].quantity", i),
					Message: "must not be negative",
				})
			}
			if spec.UnitPrice != nil {
				if err := validateUnitPrice(*spec.UnitPrice); err != nil {
					fieldErrs = append(fieldErrs, apperror.FieldError{
						Field:   fmt.Sprintf("items[%d].unit_price", i),
						Message: err.Error(),
					})
				}
			}
		}
	}

	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	// Header patch: present fields overwrite, absent fields keep their
	// stored values. The issue date is immutable.
	if input.ClientName != nil {
		invoice.ClientName = *input.ClientName
	}
	if input.ClientEmail != nil {
		invoice.ClientEmail = *input.ClientEmail
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.VATRate != nil {
		invoice.VATRate = *input.VATRate
	}

	err = s.invoiceRepo.Transaction(ctx, func(tx repository.InvoiceRepository) error {
		if err := tx.UpdateHeader(ctx, invoice); err != nil {
			return err
		}
		if input.Items == nil {
			return nil
		}

		keep := make([]uint, 0, len(*input.Items))
		for _, spec := range *input.Items {
			if spec.ID != nil {
				item := owned[*spec.ID]
				if spec.Description != nil {
					item.Description = *spec.Description
				}
				if spec.Quantity != nil {
					item.Quantity = *spec.Quantity
				}
				if spec.UnitPrice != nil {
					item.UnitPrice = *spec.UnitPrice
				}
				if err := tx.UpdateItem(ctx, &item); err != nil {
					return err
				}
				keep = append(keep, item.ID)
				continue
			}

			item := &entity.LineItem{
				InvoiceID:   invoice.ID,
				Description: *spec.Description,
				Quantity:    *spec.Quantity,
				UnitPrice:   *spec.UnitPrice,
			}
			if err := tx.CreateItem(ctx, item); err != nil {
				return err
			}
			keep = append(keep, item.ID)
		}

		// The submitted list is authoritative: stored items it did not
		// reference are removed.
		return tx.DeleteItemsNotIn(ctx, invoice.ID, keep)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, id)
}

// DeleteInvoice deletes an invoice and all its line items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uint) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	return s.invoiceRepo.Transaction(ctx, func(tx repository.InvoiceRepository) error {
		if err := tx.DeleteItemsByInvoiceID(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

func validateVATRate(rate decimal.Decimal) error {
	if !money.IsNonNegative(rate) {
		return fmt.Errorf("must not be negative")
	}
	if !money.Fits(rate, 5, 2) {
		return fmt.Errorf("must have at most 5 digits with 2 decimal places")
	}
	return nil
}

func validateUnitPrice(price decimal.Decimal) error {
	if !money.IsNonNegative(price) {
		return fmt.Errorf("must not be negative")
	}
	if !money.Fits(price, 10, 2) {
		return fmt.Errorf("must have at most 10 digits with 2 decimal places")
	}
	return nil
}

func validateItemSpec(index, quantity int, unitPrice decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if quantity < 0 {
		errs = append(errs, apperror.FieldError{
			Field:   fmt.Sprintf("items[%d].quantity", index),
			Message: "must not be negative",
		})
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		errs = append(errs, apperror.FieldError{
			Field:   fmt.Sprintf("items[%d].unit_price", index),
			Message: err.Error(),
		})
	}
	return errs
}
