package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is a stock-in document from a supplier. The supplier is free text
// on the header; line items reference catalog products.
type Purchase struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Supplier   string          `gorm:"size:200;not null" json:"supplier"`
	Company    *string         `gorm:"size:200" json:"company,omitempty"`
	Phone      *string         `gorm:"size:10" json:"phone,omitempty"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Business Business       `gorm:"foreignKey:BusinessID" json:"-"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one purchased line. Quantity is expressed in the product's
// base unit; creating the item adds that quantity to stock, deleting it takes
// the quantity back out.
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
