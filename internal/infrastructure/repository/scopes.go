package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// BusinessIDKey is the context key for the current business ID
	BusinessIDKey ctxKey = "business_id"
	// SkipBusinessScopeKey is the context key for skipping business scope (platform admin)
	SkipBusinessScopeKey ctxKey = "skip_business_scope"
)

// BusinessScope returns a GORM scope that filters by the current business.
// This should be applied to all queries for business-scoped entities.
// If SkipBusinessScopeKey is true in context (platform admin), returns all records.
func BusinessScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipBusinessScopeKey).(bool); ok && skipScope {
			return db
		}

		businessID, ok := ctx.Value(BusinessIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if business context missing
			// This prevents accidental cross-business data access
			return db.Where("1 = 0")
		}
		return db.Where("business_id = ?", businessID)
	}
}

// WithSkipBusinessScope adds skip business scope flag to context (for platform admins)
func WithSkipBusinessScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipBusinessScopeKey, skip)
}

// WithBusiness adds the business ID to context
func WithBusiness(ctx context.Context, businessID uuid.UUID) context.Context {
	return context.WithValue(ctx, BusinessIDKey, businessID)
}

// GetBusinessID extracts the business ID from context
func GetBusinessID(ctx context.Context) (uuid.UUID, bool) {
	businessID, ok := ctx.Value(BusinessIDKey).(uuid.UUID)
	return businessID, ok
}
