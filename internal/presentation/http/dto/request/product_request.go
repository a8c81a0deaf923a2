package request

import "github.com/shopspring/decimal"

// ProductRequest represents a product create/update request. OpeningStock is
// honored on create only.
type ProductRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=255"`
	Category          *string          `json:"category"`
	BaseUnit          string           `json:"base_unit" binding:"required"`
	PricePerUnit      decimal.Decimal  `json:"price_per_unit"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
	OpeningStock      *decimal.Decimal `json:"opening_stock"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
	Unit  *string         `json:"unit"`
}

// QuotePriceRequest represents a price quote request
type QuotePriceRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// StockTransactionFilterRequest represents audit log filter parameters
type StockTransactionFilterRequest struct {
	ProductID string `form:"product_id"`
	Source    string `form:"source"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
