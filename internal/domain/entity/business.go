package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Business is the tenant. Every product, invoice, purchase and expense belongs
// to exactly one business; registration creates it pending until an admin
// approves it.
type Business struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    *uuid.UUID          `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Name       string              `gorm:"size:255;not null" json:"name"`
	OwnerName  string              `gorm:"size:255" json:"owner_name"`
	OwnerEmail string              `gorm:"size:255" json:"owner_email"`
	Email      *string             `gorm:"size:255" json:"email,omitempty"`
	Phone      *string             `gorm:"size:30" json:"phone,omitempty"`
	GSTNumber  *string             `gorm:"size:64;column:gst_number" json:"gst_number,omitempty"`
	Address    *string             `gorm:"type:text" json:"address,omitempty"`
	Status     enum.BusinessStatus `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}

// IsApproved reports whether the business can use the application.
func (b *Business) IsApproved() bool {
	return b.Status == enum.BusinessStatusApproved
}
