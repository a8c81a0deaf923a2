package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
	"gorm.io/gorm"
)

// Product represents a catalog item whose stock is tracked in a base unit.
// StockQty is owned by the stock ledger: nothing outside the ledger may assign
// it directly.
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Name              string          `gorm:"size:200;not null" json:"name"`
	Category          *string         `gorm:"size:100" json:"category,omitempty"`
	BaseUnit          quantity.Unit   `gorm:"size:10;not null;default:pcs" json:"base_unit"`
	PricePerUnit      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price_per_unit"`
	StockQty          decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"stock_qty"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(14,3);not null;default:1" json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ApplyStockDelta is the single rule every ledger mutation goes through:
// add the signed delta, clamp at zero, quantize to 3 decimals.
func (p *Product) ApplyStockDelta(delta decimal.Decimal) {
	next := p.StockQty.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	p.StockQty = quantity.QuantizeStock(next)
}

// IsLowStock reports whether stock has fallen to or below the threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQty.LessThanOrEqual(p.LowStockThreshold)
}

// PriceFor prices a quantity expressed in any unit convertible to the
// product's base unit.
func (p *Product) PriceFor(qty decimal.Decimal, unit quantity.Unit) (decimal.Decimal, error) {
	if qty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	qtyInBase, err := quantity.Convert(qty, unit, p.BaseUnit)
	if err != nil {
		return decimal.Zero, err
	}
	return quantity.QuantizeMoney(p.PricePerUnit.Mul(qtyInBase)), nil
}

// StockDisplay renders the remaining stock for list screens ("1.25 ltr").
func (p *Product) StockDisplay() string {
	return quantity.FormatStock(p.StockQty, p.BaseUnit)
}

// StockTransaction is an append-only audit record of one ledger mutation.
// QtyInBase is signed: positive for stock added, negative for stock removed.
type StockTransaction struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"business_id"`
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	QtyInBase    decimal.Decimal  `gorm:"type:decimal(14,3);not null" json:"qty_in_base"`
	SourceType   enum.StockSource `gorm:"size:20;not null" json:"source_type"`
	SourceItemID *uuid.UUID       `gorm:"type:uuid;index" json:"source_item_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock transaction
func (t *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransaction model
func (StockTransaction) TableName() string {
	return "stock_transactions"
}
