package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
	"gorm.io/gorm"
)

// Invoice is a sales document. Its aggregate fields are derived: RecalcTotals
// overwrites them from the current line items and payments and may be called
// any number of times.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_business_no,priority:1" json:"business_id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNo       string             `gorm:"size:50;not null;uniqueIndex:idx_invoices_business_no,priority:2" json:"invoice_no"`
	Date            time.Time          `gorm:"type:date;not null" json:"date"`
	SubtotalTaxable decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal_taxable"`
	SubtotalExempt  decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal_exempt"`
	CGSTTotal       decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0;column:cgst_total" json:"cgst_total"`
	SGSTTotal       decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0;column:sgst_total" json:"sgst_total"`
	TaxTotal        decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"tax_total"`
	Total           decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	AmountPaid      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	Status          enum.InvoiceStatus `gorm:"size:10;not null;default:pending" json:"status"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Business Business      `gorm:"foreignKey:BusinessID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// DeriveInvoiceStatus is the status invariant: paid when amount_paid covers a
// positive total (or both are zero), partial when something but not everything
// is paid, pending otherwise.
func DeriveInvoiceStatus(total, amountPaid decimal.Decimal) enum.InvoiceStatus {
	switch {
	case total.LessThanOrEqual(decimal.Zero) && amountPaid.LessThanOrEqual(decimal.Zero):
		return enum.InvoiceStatusPaid
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return enum.InvoiceStatusPending
	case amountPaid.LessThan(total):
		return enum.InvoiceStatusPartial
	default:
		return enum.InvoiceStatusPaid
	}
}

// RecalcTotals recomputes every aggregate field from the given line items and
// payments. Line totals land in the taxable or exempt bucket depending on
// whether the line carries tax.
func (inv *Invoice) RecalcTotals(items []InvoiceItem, payments []Payment) {
	subtotalTaxable := decimal.Zero
	subtotalExempt := decimal.Zero
	cgstTotal := decimal.Zero
	sgstTotal := decimal.Zero
	taxTotal := decimal.Zero
	total := decimal.Zero

	for _, it := range items {
		if it.TaxPercent.IsPositive() {
			subtotalTaxable = subtotalTaxable.Add(it.LineTotal)
		} else {
			subtotalExempt = subtotalExempt.Add(it.LineTotal)
		}
		cgstTotal = cgstTotal.Add(it.CGSTAmount)
		sgstTotal = sgstTotal.Add(it.SGSTAmount)
		taxTotal = taxTotal.Add(it.TaxAmount)
		total = total.Add(it.LineTotal).Add(it.TaxAmount)
	}

	amountPaid := decimal.Zero
	for _, p := range payments {
		amountPaid = amountPaid.Add(p.Amount)
	}

	inv.SubtotalTaxable = quantity.QuantizeMoney(subtotalTaxable)
	inv.SubtotalExempt = quantity.QuantizeMoney(subtotalExempt)
	inv.CGSTTotal = quantity.QuantizeMoney(cgstTotal)
	inv.SGSTTotal = quantity.QuantizeMoney(sgstTotal)
	inv.TaxTotal = quantity.QuantizeMoney(taxTotal)
	inv.Total = quantity.QuantizeMoney(total)
	inv.AmountPaid = quantity.QuantizeMoney(amountPaid)
	inv.Status = DeriveInvoiceStatus(inv.Total, inv.AmountPaid)
}

// RemainingAmount is the unpaid balance, never negative.
func (inv *Invoice) RemainingAmount() decimal.Decimal {
	rem := quantity.QuantizeMoney(inv.Total.Sub(inv.AmountPaid))
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// InvoiceItem is one sold line. UOM is a multiplier in the product's base unit
// (0.5 for a half-litre bottle against a litre-tracked product); the stock
// ledger always acts on QuantityInBase, never on the raw quantity.
type InvoiceItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	UOM        decimal.Decimal `gorm:"type:decimal(10,3);not null;default:1;column:uom" json:"uom"`
	Quantity   decimal.Decimal `gorm:"type:decimal(14,3);not null;default:1" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_price"`
	TaxPercent decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"tax_percent"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"line_total"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	CGSTAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:cgst_amount" json:"cgst_amount"`
	SGSTAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:sgst_amount" json:"sgst_amount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// QuantityInBase converts the sold quantity into base units (uom * quantity).
func (it *InvoiceItem) QuantityInBase() decimal.Decimal {
	return quantity.QuantizeStock(it.UOM.Mul(it.Quantity))
}

// RecalcLine computes the stored per-line amounts. SGST is the remainder after
// halving so cgst+sgst always equals tax_amount exactly, rounding included.
func (it *InvoiceItem) RecalcLine() {
	it.LineTotal = quantity.QuantizeMoney(it.UOM.Mul(it.Quantity).Mul(it.UnitPrice))
	it.TaxAmount = quantity.QuantizeMoney(it.LineTotal.Mul(it.TaxPercent).Div(decimal.NewFromInt(100)))
	it.CGSTAmount = quantity.QuantizeMoney(it.TaxAmount.Div(decimal.NewFromInt(2)))
	it.SGSTAmount = it.TaxAmount.Sub(it.CGSTAmount)
}

// Payment records money received against an invoice.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Method      string          `gorm:"size:100" json:"method"`
	Notes       *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
