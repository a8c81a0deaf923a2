package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer belongs to a business; invoices may reference one.
type Customer struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string         `gorm:"size:200;not null" json:"name"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Phone      *string        `gorm:"size:30" json:"phone,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
