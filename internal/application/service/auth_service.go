package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	Business     *entity.Business
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens. Owners of businesses still
// awaiting approval cannot sign in.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.ErrBusinessNotActive
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	if !user.IsActive {
		return nil, apperror.ErrBusinessNotActive
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	var business *entity.Business
	var businessID *uuid.UUID

	if !user.IsAdmin() {
		var err error
		business, err = s.businessRepo.GetByOwnerID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if business == nil {
			return nil, apperror.ErrForbidden
		}
		if !business.IsApproved() {
			return nil, apperror.ErrBusinessNotActive
		}
		businessID = &business.ID
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, businessID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		Business:     business,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}
