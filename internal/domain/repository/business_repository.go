package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// BusinessFilterParams represents filtering and pagination parameters for business queries
type BusinessFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BusinessStatus
}

// BusinessRepository defines the interface for business (tenant) operations.
// These queries are not business-scoped: they serve registration and the
// platform admin surface.
type BusinessRepository interface {
	// Create stores a new business
	Create(ctx context.Context, business *entity.Business) error
	// GetByID retrieves a business by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	// GetByOwnerID retrieves the business owned by a user
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Business, error)
	// List retrieves businesses with filtering and pagination
	List(ctx context.Context, params BusinessFilterParams) ([]entity.Business, int64, error)
	// Update persists changes to a business
	Update(ctx context.Context, business *entity.Business) error
}
