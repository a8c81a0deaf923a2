package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/application/service"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/request"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/response"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/middleware"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// BusinessHandler handles business registration, profile and the admin
// approval surface
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Register handles a public business registration. The business stays pending
// and its owner inactive until an admin approves it.
func (h *BusinessHandler) Register(c *gin.Context) {
	var req request.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	business, err := h.businessService.Register(c.Request.Context(), &service.RegisterInput{
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		GSTNumber:    req.GSTNumber,
		Address:      req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration received, awaiting approval", business)
}

// GetProfile returns the caller's business
func (h *BusinessHandler) GetProfile(c *gin.Context) {
	businessID := middleware.GetBusinessID(c)
	if businessID == uuid.Nil {
		response.Forbidden(c, "Business context required")
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", business)
}

// UpdateProfile updates the caller's business profile
func (h *BusinessHandler) UpdateProfile(c *gin.Context) {
	businessID := middleware.GetBusinessID(c)
	if businessID == uuid.Nil {
		response.Forbidden(c, "Business context required")
		return
	}

	var req request.UpdateBusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	business, err := h.businessService.UpdateProfile(c.Request.Context(), businessID, &service.UpdateProfileInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		GSTNumber: req.GSTNumber,
		Address:   req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business updated successfully", business)
}

// List handles listing businesses for the admin surface
func (h *BusinessHandler) List(c *gin.Context) {
	var filter request.BusinessFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := repository.BusinessFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
	}
	if filter.Status != "" {
		status := enum.BusinessStatus(filter.Status)
		params.Status = &status
	}

	result, err := h.businessService.ListBusinesses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Businesses retrieved successfully", result)
}

// Get handles getting a single business by ID (admin)
func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", business)
}

// Approve handles approving a pending business (admin)
func (h *BusinessHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	business, err := h.businessService.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business approved successfully", business)
}

// Reject handles rejecting a pending business (admin)
func (h *BusinessHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	var req request.RejectBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	business, err := h.businessService.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business rejected", business)
}
