package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// ExpenseFilterParams represents filtering and pagination parameters for expense queries
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	From       *time.Time
	To         *time.Time
}

// ExpenseRepository defines the interface for expense operations
type ExpenseRepository interface {
	// Create stores a new expense
	Create(ctx context.Context, expense *entity.Expense) error
	// GetByID retrieves an expense by its ID within the current business
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	// List retrieves expenses with filtering and pagination
	List(ctx context.Context, params ExpenseFilterParams) ([]entity.Expense, int64, error)
	// Update persists changes to an expense
	Update(ctx context.Context, expense *entity.Expense) error
	// Delete soft-deletes an expense
	Delete(ctx context.Context, id uuid.UUID) error
}
