package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	infraRepo "github.com/smartbiz/smartbiz-api/internal/infrastructure/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/response"
)

// BusinessMiddleware propagates the caller's business into the request
// context so every repository query is scoped to it. Platform admins carry no
// business and get the skip-scope flag instead.
func BusinessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, _ := c.Get("user_role")
		if role, ok := roleVal.(string); ok && role == entity.RoleAdmin {
			ctx := infraRepo.WithSkipBusinessScope(c.Request.Context(), true)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		businessIDVal, exists := c.Get("business_id")
		if !exists {
			response.Forbidden(c, "Business context required")
			c.Abort()
			return
		}

		businessID, ok := businessIDVal.(uuid.UUID)
		if !ok || businessID == uuid.Nil {
			response.Forbidden(c, "Invalid business context")
			c.Abort()
			return
		}

		ctx := infraRepo.WithBusiness(c.Request.Context(), businessID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetBusinessID retrieves the business ID from gin context
func GetBusinessID(c *gin.Context) uuid.UUID {
	businessIDVal, exists := c.Get("business_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := businessIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
