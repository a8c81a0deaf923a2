package handler

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/application/service"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/request"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/response"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
)

// ProductHandler handles product catalog and stock HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func productInputFromRequest(req *request.ProductRequest) *service.ProductInput {
	return &service.ProductInput{
		Name:              req.Name,
		Category:          req.Category,
		BaseUnit:          quantity.Unit(req.BaseUnit),
		PricePerUnit:      req.PricePerUnit,
		LowStockThreshold: req.LowStockThreshold,
		OpeningStock:      req.OpeningStock,
	}
}

// List handles listing products with filtering
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		Category:   filter.Category,
		LowStock:   filter.LowStock,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), productInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product's catalog fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, productInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Categories handles listing distinct product categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// AdjustStock handles a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.AdjustStockInput{
		ProductID: id,
		Delta:     req.Delta,
	}
	if req.Unit != nil {
		unit := quantity.Unit(*req.Unit)
		input.Unit = &unit
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// QuotePrice handles pricing a quantity in any convertible unit
func (h *ProductHandler) QuotePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.QuotePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	price, err := h.productService.QuotePrice(c.Request.Context(), &service.QuotePriceInput{
		ProductID: id,
		Quantity:  req.Quantity,
		Unit:      quantity.Unit(req.Unit),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price quoted successfully", gin.H{"price": price})
}

// LowStock handles listing products at or below their threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// NotifyLowStock handles sending the low stock alert email
func (h *ProductHandler) NotifyLowStock(c *gin.Context) {
	count, err := h.productService.NotifyLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if count == 0 {
		response.OK(c, "No products below threshold", gin.H{"notified": 0})
		return
	}
	response.OK(c, "Low stock alert sent", gin.H{"notified": count})
}

// StockTransactions handles listing the stock audit log (page-based by
// default, keyset cursor when cursor/limit parameters are present)
func (h *ProductHandler) StockTransactions(c *gin.Context) {
	var filter request.StockTransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if c.Query("cursor") != "" || c.Query("limit") != "" {
		h.stockTransactionsWithCursor(c, &filter)
		return
	}

	params := repository.StockTransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
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
	if filter.Source != "" {
		source := enum.StockSource(filter.Source)
		if !source.IsValid() {
			response.BadRequest(c, "Invalid stock source")
			return
		}
		params.Source = &source
	}

	result, err := h.productService.ListStockTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock transactions retrieved successfully", result)
}

func (h *ProductHandler) stockTransactionsWithCursor(c *gin.Context, filter *request.StockTransactionFilterRequest) {
	limit := 15
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	params := repository.StockTransactionCursorParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
	}
	if filter.ProductID != "" {
		productID, err := uuid.Parse(filter.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		params.ProductID = &productID
	}
	if filter.Source != "" {
		source := enum.StockSource(filter.Source)
		if !source.IsValid() {
			response.BadRequest(c, "Invalid stock source")
			return
		}
		params.Source = &source
	}

	result, err := h.productService.ListStockTransactionsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock transactions retrieved successfully", result)
}

// ExportCSV streams the full product list as a CSV file
func (h *ProductHandler) ExportCSV(c *gin.Context) {
	products, err := h.productService.ListAllProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("products_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	_ = w.Write([]string{"Name", "Category", "Base Unit", "Price Per Unit", "Stock", "Low Stock Threshold", "Created At"})
	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = *p.Category
		}
		_ = w.Write([]string{
			p.Name,
			category,
			p.BaseUnit.String(),
			p.PricePerUnit.StringFixed(2),
			p.StockQty.StringFixed(3),
			p.LowStockThreshold.StringFixed(3),
			p.CreatedAt.Format("2006-01-02"),
		})
	}
}
