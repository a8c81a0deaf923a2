package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/email"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
	"github.com/smartbiz/smartbiz-api/pkg/utils"
)

// BusinessService handles business registration and the approval workflow
type BusinessService struct {
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	emailService *email.EmailService
}

// NewBusinessService creates a new business service
func NewBusinessService(
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	emailService *email.EmailService,
) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// RegisterInput represents a business registration
type RegisterInput struct {
	BusinessName string
	OwnerName    string
	Email        string
	Password     string
	Phone        *string
	GSTNumber    *string
	Address      *string
}

// Register creates a pending business with an inactive owner account. Both
// stay locked until an admin approves the registration.
func (s *BusinessService) Register(ctx context.Context, input *RegisterInput) (*entity.Business, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     input.OwnerName,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     entity.RoleOwner,
		IsActive: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	business := &entity.Business{
		OwnerID:    &user.ID,
		Name:       input.BusinessName,
		OwnerName:  input.OwnerName,
		OwnerEmail: input.Email,
		Phone:      input.Phone,
		GSTNumber:  input.GSTNumber,
		Address:    input.Address,
		Status:     enum.BusinessStatusPending,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}

// GetBusiness retrieves a business by ID
func (s *BusinessService) GetBusiness(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return business, nil
}

// ListBusinesses lists businesses for the admin surface
func (s *BusinessService) ListBusinesses(ctx context.Context, params repository.BusinessFilterParams) (*pagination.PaginatedResult[entity.Business], error) {
	businesses, total, err := s.businessRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(businesses, pag), nil
}

// Approve marks a pending business approved and activates its owner account.
// The notification email is best-effort: approval stands even if it fails.
func (s *BusinessService) Approve(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}

	if business.Status == enum.BusinessStatusApproved {
		return nil, apperror.NewBadRequestError("Business is already approved")
	}

	business.Status = enum.BusinessStatusApproved
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	if business.OwnerID != nil {
		owner, err := s.userRepo.GetByID(ctx, *business.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner != nil && !owner.IsActive {
			owner.IsActive = true
			if err := s.userRepo.Update(ctx, owner); err != nil {
				return nil, err
			}
		}
	}

	if err := s.emailService.SendBusinessApprovedEmail(business.OwnerEmail, business.OwnerName, business.Name); err != nil {
		log.Printf("Warning: failed to send approval email to %s: %v", business.OwnerEmail, err)
	}

	return business, nil
}

// Reject marks a pending business rejected and notifies the owner
func (s *BusinessService) Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}

	if business.Status != enum.BusinessStatusPending {
		return nil, apperror.NewBadRequestError("Only pending businesses can be rejected")
	}

	business.Status = enum.BusinessStatusRejected
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	if err := s.emailService.SendBusinessRejectedEmail(business.OwnerEmail, business.OwnerName, business.Name, reason); err != nil {
		log.Printf("Warning: failed to send rejection email to %s: %v", business.OwnerEmail, err)
	}

	return business, nil
}

// UpdateProfileInput represents editable business profile fields
type UpdateProfileInput struct {
	Name      string
	Email     *string
	Phone     *string
	GSTNumber *string
	Address   *string
}

// UpdateProfile updates the business profile of the current owner
func (s *BusinessService) UpdateProfile(ctx context.Context, id uuid.UUID, input *UpdateProfileInput) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}

	if input.Name != "" {
		business.Name = input.Name
	}
	if input.Email != nil {
		business.Email = input.Email
	}
	if input.Phone != nil {
		business.Phone = input.Phone
	}
	if input.GSTNumber != nil {
		business.GSTNumber = input.GSTNumber
	}
	if input.Address != nil {
		business.Address = input.Address
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}
