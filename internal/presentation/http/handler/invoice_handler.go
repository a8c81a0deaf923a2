package handler

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/application/service"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/request"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/response"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// InvoiceHandler handles invoice and payment HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func invoiceInputFromRequest(c *gin.Context, req *request.InvoiceRequest) (*service.InvoiceInput, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return nil, false
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.InvoiceItemInput{
			ID:         it.ID,
			ProductID:  it.ProductID,
			UOM:        it.UOM,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TaxPercent: it.TaxPercent,
		})
	}

	return &service.InvoiceInput{
		CustomerID: req.CustomerID,
		Date:       date,
		Notes:      req.Notes,
		Items:      items,
	}, true
}

// List handles listing invoices with filtering
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		From:       parseDateQuery(filter.From),
		To:         parseDateQuery(filter.To),
	}
	if filter.Status != "" {
		status := enum.InvoiceStatus(filter.Status)
		params.Status = &status
	}
	if filter.CustomerID != "" {
		customerID, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := invoiceInputFromRequest(c, &req)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice with items and payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := invoiceInputFromRequest(c, &req)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// NextNumber previews the invoice number the next invoice would get
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	date := time.Now()
	if d := parseDateQuery(c.Query("date")); d != nil {
		date = *d
	}

	invoiceNo, err := h.invoiceService.NextInvoiceNo(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next invoice number retrieved", gin.H{"invoice_no": invoiceNo})
}

// AddPayment handles recording a payment against an invoice
func (h *InvoiceHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		response.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
		return
	}

	invoice, err := h.invoiceService.AddPayment(c.Request.Context(), id, &service.PaymentInput{
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      req.Method,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", invoice)
}

// DeletePayment handles removing a payment from an invoice
func (h *InvoiceHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	invoice, err := h.invoiceService.DeletePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", invoice)
}

// Recalc recomputes the invoice aggregates from its lines and payments
func (h *InvoiceHandler) Recalc(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.RecalcInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice recalculated successfully", invoice)
}

// ExportCSV streams the full invoice list as a CSV file
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	invoices, err := h.invoiceService.ListAllInvoices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoices_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	_ = w.Write([]string{"Invoice No", "Date", "Customer", "Subtotal Taxable", "Subtotal Exempt", "CGST", "SGST", "Tax Total", "Total", "Amount Paid", "Status"})
	for _, inv := range invoices {
		customer := ""
		if inv.Customer != nil {
			customer = inv.Customer.Name
		}
		_ = w.Write([]string{
			inv.InvoiceNo,
			inv.Date.Format("2006-01-02"),
			customer,
			inv.SubtotalTaxable.StringFixed(2),
			inv.SubtotalExempt.StringFixed(2),
			inv.CGSTTotal.StringFixed(2),
			inv.SGSTTotal.StringFixed(2),
			inv.TaxTotal.StringFixed(2),
			inv.Total.StringFixed(2),
			inv.AmountPaid.StringFixed(2),
			inv.Status.String(),
		})
	}
}
