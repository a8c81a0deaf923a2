package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	domainRepo "github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreateWithStock(ctx context.Context, purchase *entity.Purchase, mut *domainRepo.StockMutation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		return applyStockMutation(ctx, tx, mut)
	})
}

func (r *purchaseRepository) UpdateWithStock(ctx context.Context, purchase *entity.Purchase, removedItemIDs []uuid.UUID, mut *domainRepo.StockMutation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.Purchase{}).
			Where("id = ?", purchase.ID).
			Updates(map[string]interface{}{
				"supplier": purchase.Supplier,
				"company":  purchase.Company,
				"phone":    purchase.Phone,
				"date":     purchase.Date,
				"total":    purchase.Total,
			}).Error
		if err != nil {
			return err
		}

		for i := range purchase.Items {
			purchase.Items[i].PurchaseID = purchase.ID
			if err := tx.Save(&purchase.Items[i]).Error; err != nil {
				return err
			}
		}

		if len(removedItemIDs) > 0 {
			err := tx.Where("purchase_id = ? AND id IN ?", purchase.ID, removedItemIDs).
				Delete(&entity.PurchaseItem{}).Error
			if err != nil {
				return err
			}
		}

		return applyStockMutation(ctx, tx, mut)
	})
}

func (r *purchaseRepository) DeleteWithStock(ctx context.Context, id uuid.UUID, mut *domainRepo.StockMutation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&entity.PurchaseItem{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(BusinessScope(ctx)).Delete(&entity.Purchase{}, "id = ?", id).Error; err != nil {
			return err
		}
		return applyStockMutation(ctx, tx, mut)
	})
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Items").Preload("Items.Product").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) List(ctx context.Context, params domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Scopes(BusinessScope(ctx))

	if params.Search != "" {
		query = query.Where("supplier ILIKE ? OR company ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ProductID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM purchase_items pi WHERE pi.purchase_id = purchases.id AND pi.product_id = ?)",
			*params.ProductID)
	}

	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("date <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").Preload("Items.Product").
		Order("date DESC, created_at DESC").
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]entity.Purchase, error) {
	var purchases []entity.Purchase
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Items").
		Order("date ASC, created_at ASC").
		Find(&purchases).Error
	return purchases, err
}
