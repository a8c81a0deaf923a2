package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
)

// UserRepository defines the interface for user operations
type UserRepository interface {
	// Create stores a new user
	Create(ctx context.Context, user *entity.User) error
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByEmail reports whether a user with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update persists changes to a user
	Update(ctx context.Context, user *entity.User) error
}
