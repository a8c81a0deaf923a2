package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	domainRepo "github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"gorm.io/gorm"
)

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domainRepo.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) List(ctx context.Context, params domainRepo.BusinessFilterParams) ([]entity.Business, int64, error) {
	var businesses []entity.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Business{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR owner_name ILIKE ? OR owner_email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&businesses).Error

	return businesses, total, err
}

func (r *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}
