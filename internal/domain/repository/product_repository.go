package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// ProductFilterParams represents filtering and pagination parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// ProductRepository defines the interface for product catalog operations.
// It never writes StockQty: stock moves only through the StockLedger.
type ProductRepository interface {
	// Create stores a new product
	Create(ctx context.Context, product *entity.Product) error
	// GetByID retrieves a product by its ID within the current business
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs within the current business
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// List retrieves products with filtering and pagination
	List(ctx context.Context, params ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll retrieves every product of the current business, unpaginated
	ListAll(ctx context.Context) ([]entity.Product, error)
	// ListLowStock retrieves products at or below their low-stock threshold
	ListLowStock(ctx context.Context) ([]entity.Product, error)
	// Categories lists the distinct non-empty categories of the current business
	Categories(ctx context.Context) ([]string, error)
	// Update persists catalog fields (name, category, unit, price, threshold)
	Update(ctx context.Context, product *entity.Product) error
	// Delete soft-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductDelta is the net signed stock change for one product, in base units.
type ProductDelta struct {
	ProductID uuid.UUID
	Delta     decimal.Decimal
}

// StockMutation is the stock side of a document transition: the net per-product
// deltas to apply under row locks, plus the audit rows describing each item
// movement. Deltas must be ordered by product ID so concurrent transitions
// acquire locks in the same order.
type StockMutation struct {
	Deltas []ProductDelta
	Audit  []entity.StockTransaction
}

// StockLedger is the only writer of Product.StockQty. Every method locks the
// product row, applies the clamped delta and records an audit transaction
// inside a single database transaction.
type StockLedger interface {
	// Increase adds qty (base units) to a product's stock
	Increase(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, source enum.StockSource, sourceItemID *uuid.UUID) (*entity.Product, error)
	// Reduce removes qty (base units) from a product's stock, clamping at zero
	Reduce(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, source enum.StockSource, sourceItemID *uuid.UUID) (*entity.Product, error)
	// Apply runs a prepared batch of deltas and audit rows in one transaction
	Apply(ctx context.Context, mut *StockMutation) error
}

// StockTransactionFilterParams represents filtering parameters for the audit log
type StockTransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	Source     *enum.StockSource
	From       *time.Time
	To         *time.Time
}

// StockTransactionCursorParams represents keyset-paginated audit log filters.
// The log is append-only, so cursor paging stays stable while new rows arrive.
type StockTransactionCursorParams struct {
	Cursor    *pagination.CursorParams
	ProductID *uuid.UUID
	Source    *enum.StockSource
}

// StockTransactionRepository reads the append-only stock audit log
type StockTransactionRepository interface {
	// List retrieves audit records with filtering and pagination, newest first
	List(ctx context.Context, params StockTransactionFilterParams) ([]entity.StockTransaction, int64, error)
	// ListWithCursor retrieves audit records with keyset pagination, newest first
	ListWithCursor(ctx context.Context, params StockTransactionCursorParams) ([]entity.StockTransaction, *pagination.CursorPagination, error)
	// ListByProduct retrieves all audit records for one product, newest first
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockTransaction, error)
}
