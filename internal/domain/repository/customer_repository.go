package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// CustomerFilterParams represents filtering and pagination parameters for customer queries
type CustomerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// CustomerRepository defines the interface for customer operations
type CustomerRepository interface {
	// Create stores a new customer
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID retrieves a customer by its ID within the current business
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// List retrieves customers with filtering and pagination
	List(ctx context.Context, params CustomerFilterParams) ([]entity.Customer, int64, error)
	// Update persists changes to a customer
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete soft-deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error
}
