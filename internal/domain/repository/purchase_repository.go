package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// PurchaseFilterParams represents filtering and pagination parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ProductID  *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// PurchaseRepository persists purchase documents. The *WithStock methods run
// the document write and the stock mutation in one transaction: either both
// land or neither does.
type PurchaseRepository interface {
	// CreateWithStock stores a purchase with its items and applies the stock increases
	CreateWithStock(ctx context.Context, purchase *entity.Purchase, mut *StockMutation) error
	// UpdateWithStock saves the header, upserts purchase.Items, deletes the
	// removed items and applies the net stock deltas
	UpdateWithStock(ctx context.Context, purchase *entity.Purchase, removedItemIDs []uuid.UUID, mut *StockMutation) error
	// DeleteWithStock soft-deletes a purchase and reverses its stock effect
	DeleteWithStock(ctx context.Context, id uuid.UUID, mut *StockMutation) error
	// GetByID retrieves a purchase with its items and their products
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	// List retrieves purchases with filtering and pagination
	List(ctx context.Context, params PurchaseFilterParams) ([]entity.Purchase, int64, error)
	// ListAll retrieves every purchase of the business (for exports)
	ListAll(ctx context.Context) ([]entity.Purchase, error)
}
