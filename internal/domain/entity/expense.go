package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a business cost outside purchasing (rent, electricity, wages).
type Expense struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Category   *string         `gorm:"size:100" json:"category,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	Notes      *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
