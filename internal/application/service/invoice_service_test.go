package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nimbusoft/invoicing-api/internal/application/service"
	"github.com/nimbusoft/invoicing-api/internal/domain/entity"
	infraRepo "github.com/nimbusoft/invoicing-api/internal/infrastructure/repository"
	"github.com/nimbusoft/invoicing-api/pkg/apperror"
	"github.com/nimbusoft/invoicing-api/pkg/money"
	"github.com/nimbusoft/invoicing-api/pkg/pagination"
)

func setupServiceTest(t *testing.T) (*service.InvoiceService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(&entity.Invoice{}, &entity.LineItem{}), "migrate")

	return service.NewInvoiceService(infraRepo.NewInvoiceRepository(db)), db
}

func ptr[T any](v T) *T { return &v }

func createInput(items ...service.ItemInput) *service.CreateInvoiceInput {
	return &service.CreateInvoiceInput{
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.test",
		DueDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Items:       items,
	}
}

func TestCreateInvoiceWithItems(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "Design work", Quantity: 2, UnitPrice: money.MustFromString("10.00")},
		service.ItemInput{Description: "Hosting", Quantity: 3, UnitPrice: money.MustFromString("5.55")},
	))
	require.NoError(t, err)

	assert.NotZero(t, invoice.ID)
	assert.Equal(t, "Acme Corp", invoice.ClientName)
	require.Len(t, invoice.Items, 2)
	for _, item := range invoice.Items {
		assert.Equal(t, invoice.ID, item.InvoiceID)
	}
	// Default VAT rate applies when none is supplied
	assert.True(t, invoice.VATRate.Equal(money.MustFromString("21")))
	// Issue date is assigned by the server
	assert.False(t, invoice.Date.IsZero())
}

func TestCreateInvoiceNoItems(t *testing.T) {
	svc, _ := setupServiceTest(t)

	invoice, err := svc.CreateInvoice(context.Background(), createInput())
	require.NoError(t, err)
	assert.Empty(t, invoice.Items)

	totals := service.InvoiceTotals(invoice)
	assert.True(t, totals.Subtotal.IsZero())
}

func TestCreateInvoiceInvalidItemLeavesNothing(t *testing.T) {
	svc, db := setupServiceTest(t)

	_, err := svc.CreateInvoice(context.Background(), createInput(
		service.ItemInput{Description: "ok", Quantity: 1, UnitPrice: money.MustFromString("10.00")},
		service.ItemInput{Description: "bad", Quantity: -2, UnitPrice: money.MustFromString("10.00")},
	))
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "items[1].quantity", appErr.Errors[0].Field)

	var invoiceCount, itemCount int64
	require.NoError(t, db.Model(&entity.Invoice{}).Count(&invoiceCount).Error)
	require.NoError(t, db.Model(&entity.LineItem{}).Count(&itemCount).Error)
	assert.Zero(t, invoiceCount, "no invoice row may survive a rejected create")
	assert.Zero(t, itemCount)
}

func TestCreateInvoiceInvalidVATRate(t *testing.T) {
	svc, _ := setupServiceTest(t)

	input := createInput()
	input.VATRate = ptr(money.MustFromString("21.005"))
	_, err := svc.CreateInvoice(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "vat_rate", apperror.GetAppError(err).Errors[0].Field)

	input.VATRate = ptr(money.MustFromString("-1.00"))
	_, err = svc.CreateInvoice(context.Background(), input)
	require.Error(t, err)

	// 4 whole digits overflow decimal(5,2) even with a short fraction;
	// this must fail validation, never reach the column.
	input.VATRate = ptr(money.MustFromString("1234.5"))
	_, err = svc.CreateInvoice(context.Background(), input)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Equal(t, "vat_rate", appErr.Errors[0].Field)
}

func TestCreateInvoiceUnitPriceOverflow(t *testing.T) {
	svc, db := setupServiceTest(t)

	_, err := svc.CreateInvoice(context.Background(), createInput(
		service.ItemInput{Description: "huge", Quantity: 1, UnitPrice: money.MustFromString("123456789.5")},
	))
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "items[0].unit_price", appErr.Errors[0].Field)

	var invoiceCount int64
	require.NoError(t, db.Model(&entity.Invoice{}).Count(&invoiceCount).Error)
	assert.Zero(t, invoiceCount)
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _ := setupServiceTest(t)

	_, err := svc.GetInvoice(context.Background(), 12345)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateInvoiceHeaderPatch(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "Design work", Quantity: 1, UnitPrice: money.MustFromString("50.00")},
	))
	require.NoError(t, err)
	originalDate := created.Date

	updated, err := svc.UpdateInvoice(ctx, created.ID, &service.UpdateInvoiceInput{
		ClientName: ptr("Acme Holdings"),
		VATRate:    ptr(money.MustFromString("9.00")),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Holdings", updated.ClientName)
	// Absent fields keep their stored values
	assert.Equal(t, "billing@acme.test", updated.ClientEmail)
	assert.True(t, updated.VATRate.Equal(money.MustFromString("9")))
	assert.Equal(t, originalDate.Format("2006-01-02"), updated.Date.Format("2006-01-02"))
	// Items untouched when the list is absent
	require.Len(t, updated.Items, 1)
}

func TestUpdateInvoiceOmittedItemsAreDeleted(t *testing.T) {
	svc, db := setupServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "Keep me", Quantity: 1, UnitPrice: money.MustFromString("10.00")},
		service.ItemInput{Description: "Drop me", Quantity: 2, UnitPrice: money.MustFromString("20.00")},
	))
	require.NoError(t, err)
	require.Len(t, created.Items, 2)
	keptID := created.Items[0].ID

	updated, err := svc.UpdateInvoice(ctx, created.ID, &service.UpdateInvoiceInput{
		Items: &[]service.ItemPatch{
			{ID: &keptID, Quantity: ptr(5)},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, keptID, updated.Items[0].ID)
	assert.Equal(t, 5, updated.Items[0].Quantity)
	// Absent item fields keep their stored values
	assert.Equal(t, "Keep me", updated.Items[0].Description)

	var itemCount int64
	require.NoError(t, db.Model(&entity.LineItem{}).Where("invoice_id = ?", created.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestUpdateInvoiceAddsNewItems(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "Existing", Quantity: 1, UnitPrice: money.MustFromString("10.00")},
	))
	require.NoError(t, err)
	existingID := created.Items[0].ID

	updated, err := svc.UpdateInvoice(ctx, created.ID, &service.UpdateInvoiceInput{
		Items: &[]service.ItemPatch{
			{ID: &existingID},
			{Description: ptr("Brand new"), Quantity: ptr(3), UnitPrice: ptr(money.MustFromString("7.50"))},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, "Brand new", updated.Items[1].Description)
	assert.Equal(t, created.ID, updated.Items[1].InvoiceID)
}

func TestUpdateInvoiceRejectsForeignItemID(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	first, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "First invoice item", Quantity: 1, UnitPrice: money.MustFromString("10.00")},
	))
	require.NoError(t, err)

	second, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "Second invoice item", Quantity: 2, UnitPrice: money.MustFromString("20.00")},
	))
	require.NoError(t, err)

	foreignID := second.Items[0].ID
	_, err = svc.UpdateInvoice(ctx, first.ID, &service.UpdateInvoiceInput{
		ClientName: ptr("Should not stick"),
		Items: &[]service.ItemPatch{
			{ID: &foreignID, Quantity: ptr(99)},
		},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "items[0].id", appErr.Errors[0].Field)

	// Both invoices must be unchanged
	reloadedFirst, err := svc.GetInvoice(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", reloadedFirst.ClientName)
	require.Len(t, reloadedFirst.Items, 1)

	reloadedSecond, err := svc.GetInvoice(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, reloadedSecond.Items, 1)
	assert.Equal(t, 2, reloadedSecond.Items[0].Quantity)
}

func TestUpdateInvoiceNewItemRequiresAllFields(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, createInput())
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(ctx, created.ID, &service.UpdateInvoiceInput{
		Items: &[]service.ItemPatch{
			{Description: ptr("No price")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "items[0]", apperror.GetAppError(err).Errors[0].Field)
}

func TestUpdateInvoiceNotFound(t *testing.T) {
	svc, _ := setupServiceTest(t)

	_, err := svc.UpdateInvoice(context.Background(), 999, &service.UpdateInvoiceInput{})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	svc, db := setupServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, createInput(
		service.ItemInput{Description: "A", Quantity: 1, UnitPrice: money.MustFromString("10.00")},
		service.ItemInput{Description: "B", Quantity: 2, UnitPrice: money.MustFromString("20.00")},
	))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(ctx, created.ID))

	_, err = svc.GetInvoice(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	var itemCount int64
	require.NoError(t, db.Model(&entity.LineItem{}).Where("invoice_id = ?", created.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount, "no orphaned line items may remain")
}

func TestDeleteInvoiceNotFound(t *testing.T) {
	svc, _ := setupServiceTest(t)

	err := svc.DeleteInvoice(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListInvoices(t *testing.T) {
	svc, _ := setupServiceTest(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		input := createInput(service.ItemInput{Description: "Item", Quantity: 1, UnitPrice: money.MustFromString("10.00")})
		if i == 2 {
			input.ClientName = "Zenith GmbH"
			input.ClientEmail = "accounts@zenith.test"
		}
		_, err := svc.CreateInvoice(ctx, input)
		require.NoError(t, err)
	}

	result, err := svc.ListInvoices(ctx, &service.ListInvoicesInput{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Pagination.Total)
	require.Len(t, result.Items, 3)
	// Newest first
	assert.Equal(t, "Zenith GmbH", result.Items[0].ClientName)
	// Items come preloaded for total computation
	require.Len(t, result.Items[0].Items, 1)

	filtered, err := svc.ListInvoices(ctx, &service.ListInvoicesInput{
		Pagination: pagination.DefaultPagination(),
		Search:     "zenith",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, filtered.Pagination.Total)
}
