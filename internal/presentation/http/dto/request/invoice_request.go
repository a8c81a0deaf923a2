package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest represents one sold line. UOM is a pack-size multiplier
// in the product's base unit; omitted it defaults to 1. UnitPrice defaults to
// the product's catalog price.
type InvoiceItemRequest struct {
	ID         *uuid.UUID       `json:"id"`
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	UOM        *decimal.Decimal `json:"uom"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	TaxPercent decimal.Decimal  `json:"tax_percent"`
}

// InvoiceRequest represents an invoice create/update request. Updates are
// full replacements: every field and the complete item list must be sent, and
// omitting customer_id detaches the customer.
type InvoiceRequest struct {
	CustomerID *uuid.UUID           `json:"customer_id"`
	Date       string               `json:"date" binding:"required"`
	Notes      *string              `json:"notes"`
	Items      []InvoiceItemRequest `json:"items" binding:"required"`
}

// PaymentRequest represents a payment against an invoice
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" binding:"required"`
	Method      string          `json:"method"`
	Notes       *string         `json:"notes"`
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
