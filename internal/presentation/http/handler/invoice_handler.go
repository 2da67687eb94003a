package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimbusoft/invoicing-api/internal/application/service"
	"github.com/nimbusoft/invoicing-api/internal/config"
	"github.com/nimbusoft/invoicing-api/internal/presentation/http/dto/request"
	"github.com/nimbusoft/invoicing-api/internal/presentation/http/dto/response"
	"github.com/nimbusoft/invoicing-api/pkg/pagination"
	"github.com/nimbusoft/invoicing-api/pkg/pdf"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	company        *config.CompanyConfig
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, company *config.CompanyConfig) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, company: company}
}

// List handles listing invoices with computed totals
// @Summary List Invoices
// @Description Get all invoices with pagination and search
// @Tags invoices
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search over client name and email"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	params.Validate()

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &service.ListInvoicesInput{
		Pagination: params,
		Search:     filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	views := pagination.NewPaginatedResult(
		response.NewInvoiceViews(result.Items),
		result.Pagination,
	)
	response.SuccessWithPagination(c, http.StatusOK, "Invoices retrieved successfully", views)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Description Get an invoice by ID with computed totals
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", response.NewInvoiceView(invoice))
}

// Create handles creating an invoice with its initial items
// @Summary Create Invoice
// @Description Create a new invoice together with its line items
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body request.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dueDate, ok := parseDate(c, req.DueDate)
	if !ok {
		return
	}

	items := make([]service.ItemInput, len(*req.Items))
	for i, item := range *req.Items {
		items[i] = service.ItemInput{
			Description: item.Description,
			Quantity:    *item.Quantity,
			UnitPrice:   *item.UnitPrice,
		}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		DueDate:     dueDate,
		VATRate:     req.VATRate,
		Items:       items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", response.NewInvoiceView(invoice))
}

// Update handles updating an invoice header and reconciling its items
// @Summary Update Invoice
// @Description Patch invoice header fields and reconcile the submitted item list
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body request.UpdateInvoiceRequest true "Invoice data"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateInvoiceInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		VATRate:     req.VATRate,
	}

	if req.DueDate != nil {
		dueDate, ok := parseDate(c, *req.DueDate)
		if !ok {
			return
		}
		input.DueDate = &dueDate
	}

	if req.Items != nil {
		patches := make([]service.ItemPatch, len(*req.Items))
		for i, item := range *req.Items {
			patches[i] = service.ItemPatch{
				ID:          item.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			}
		}
		input.Items = &patches
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", response.NewInvoiceView(invoice))
}

// Delete handles deleting an invoice and all its items
// @Summary Delete Invoice
// @Description Delete an invoice by ID; its line items are removed with it
// @Tags invoices
// @Param id path int true "Invoice ID"
// @Success 204
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ExportPDF handles rendering an invoice as a downloadable PDF
// @Summary Export Invoice PDF
// @Description Render the invoice with its computed totals as a PDF document
// @Tags invoices
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Success 200 {file} binary
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	id, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	view := response.NewInvoiceView(invoice)

	data := pdf.InvoiceData{
		Number:  fmt.Sprintf("%d", view.ID),
		Date:    view.Date,
		DueDate: view.DueDate,
		Company: pdf.Party{
			Name:    h.company.Name,
			Email:   h.company.Email,
			Address: h.company.Address,
		},
		Client: pdf.Party{
			Name:  view.ClientName,
			Email: view.ClientEmail,
		},
		VATRate:     view.VATRate.StringFixed(2),
		Subtotal:    view.Subtotal.StringFixed(2),
		VATAmount:   view.VATAmount.StringFixed(2),
		TotalAmount: view.TotalAmount.StringFixed(2),
	}
	for _, item := range view.Items {
		data.Items = append(data.Items, pdf.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Total:       item.TotalPrice.StringFixed(2),
		})
	}

	document, err := pdf.InvoiceDocument(data)
	if err != nil {
		response.Error(c, apperrRender(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"invoice_%d.pdf\"", view.ID))
	c.Data(http.StatusOK, "application/pdf", document)
}
