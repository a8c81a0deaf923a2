package handler

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/application/service"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/request"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/response"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// PurchaseHandler handles purchase HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func purchaseInputFromRequest(c *gin.Context, req *request.PurchaseRequest) (*service.PurchaseInput, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return nil, false
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.PurchaseItemInput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}

	return &service.PurchaseInput{
		Supplier: req.Supplier,
		Company:  req.Company,
		Phone:    req.Phone,
		Date:     date,
		Items:    items,
	}, true
}

// List handles listing purchases with filtering
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := repository.PurchaseFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		From:       parseDateQuery(filter.From),
		To:         parseDateQuery(filter.To),
	}
	if filter.ProductID != "" {
		productID, err := uuid.Parse(filter.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		params.ProductID = &productID
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Create handles creating a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := purchaseInputFromRequest(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// Get handles getting a single purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Update handles updating a purchase
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := purchaseInputFromRequest(c, &req)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase updated successfully", purchase)
}

// Delete handles deleting a purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ExportCSV streams the full purchase list as a CSV file
func (h *PurchaseHandler) ExportCSV(c *gin.Context) {
	purchases, err := h.purchaseService.ListAllPurchases(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("purchases_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	_ = w.Write([]string{"Supplier", "Company", "Phone", "Date", "Items", "Total"})
	for _, p := range purchases {
		company := ""
		if p.Company != nil {
			company = *p.Company
		}
		phone := ""
		if p.Phone != nil {
			phone = *p.Phone
		}
		_ = w.Write([]string{
			p.Supplier,
			company,
			phone,
			p.Date.Format("2006-01-02"),
			strconv.Itoa(len(p.Items)),
			p.Total.StringFixed(2),
		})
	}
}
