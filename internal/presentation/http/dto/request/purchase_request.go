package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest represents one purchased line. ID identifies an existing
// item when editing.
type PurchaseItemRequest struct {
	ID        *uuid.UUID      `json:"id"`
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseRequest represents a purchase create/update request
type PurchaseRequest struct {
	Supplier string                `json:"supplier" binding:"required"`
	Company  *string               `json:"company"`
	Phone    *string               `json:"phone"`
	Date     string                `json:"date" binding:"required"`
	Items    []PurchaseItemRequest `json:"items" binding:"required"`
}

// PurchaseFilterRequest represents purchase filter parameters
type PurchaseFilterRequest struct {
	Search    string `form:"search"`
	ProductID string `form:"product_id"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
