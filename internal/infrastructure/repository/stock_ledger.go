package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	domainRepo "github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stockLedger is the single writer of Product.StockQty. All mutations go
// through lockProduct/applyProductDelta so the read-modify-write happens under
// a SELECT ... FOR UPDATE row lock.
type stockLedger struct {
	db *gorm.DB
}

// NewStockLedger creates the stock ledger backed by the given database
func NewStockLedger(db *gorm.DB) domainRepo.StockLedger {
	return &stockLedger{db: db}
}

// lockProduct loads a product row FOR UPDATE inside the transaction. The lock
// is held until the surrounding transaction commits or rolls back.
func lockProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(BusinessScope(ctx)).
		First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// applyProductDelta locks the product, applies the clamped signed delta and
// writes back only the stock column.
func applyProductDelta(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta decimal.Decimal) (*entity.Product, error) {
	product, err := lockProduct(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	product.ApplyStockDelta(delta)

	err = tx.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Update("stock_qty", product.StockQty).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

// stampAuditBusiness fills each empty audit row business from the owning
// product and returns the product IDs it could not resolve from owners.
func stampAuditBusiness(txns []entity.StockTransaction, owners map[uuid.UUID]uuid.UUID) []uuid.UUID {
	var missing []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for i := range txns {
		if txns[i].BusinessID != uuid.Nil {
			continue
		}
		if businessID, ok := owners[txns[i].ProductID]; ok {
			txns[i].BusinessID = businessID
		} else if !seen[txns[i].ProductID] {
			seen[txns[i].ProductID] = true
			missing = append(missing, txns[i].ProductID)
		}
	}
	return missing
}

// recordStockTransactions appends audit rows. The business comes from the
// product row, never from the caller's context: an admin editing a tenant's
// document under the skip-scope context still writes the tenant's audit
// trail. Products with a net-zero delta were not locked by the caller, so
// they are looked up here.
func recordStockTransactions(ctx context.Context, tx *gorm.DB, txns []entity.StockTransaction, owners map[uuid.UUID]uuid.UUID) error {
	if len(txns) == 0 {
		return nil
	}
	if owners == nil {
		owners = make(map[uuid.UUID]uuid.UUID)
	}
	for _, productID := range stampAuditBusiness(txns, owners) {
		product, err := lockProduct(ctx, tx, productID)
		if err != nil {
			return err
		}
		owners[productID] = product.BusinessID
	}
	stampAuditBusiness(txns, owners)
	return tx.WithContext(ctx).Create(&txns).Error
}

// applyStockMutation runs a prepared batch of net deltas plus audit rows
// inside an existing transaction. Deltas are applied in the order given;
// callers sort them by product ID to keep lock acquisition deterministic.
func applyStockMutation(ctx context.Context, tx *gorm.DB, mut *domainRepo.StockMutation) error {
	if mut == nil {
		return nil
	}
	owners := make(map[uuid.UUID]uuid.UUID, len(mut.Deltas))
	for _, d := range mut.Deltas {
		if d.Delta.IsZero() {
			continue
		}
		product, err := applyProductDelta(ctx, tx, d.ProductID, d.Delta)
		if err != nil {
			return err
		}
		owners[product.ID] = product.BusinessID
	}
	return recordStockTransactions(ctx, tx, mut.Audit, owners)
}

func (l *stockLedger) Increase(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, source enum.StockSource, sourceItemID *uuid.UUID) (*entity.Product, error) {
	return l.applyOne(ctx, productID, qty.Abs(), source, sourceItemID)
}

func (l *stockLedger) Reduce(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, source enum.StockSource, sourceItemID *uuid.UUID) (*entity.Product, error) {
	return l.applyOne(ctx, productID, qty.Abs().Neg(), source, sourceItemID)
}

// applyOne applies a single signed delta and records the matching audit row.
// The audit keeps the requested delta even when the clamp absorbed part of it.
func (l *stockLedger) applyOne(ctx context.Context, productID uuid.UUID, delta decimal.Decimal, source enum.StockSource, sourceItemID *uuid.UUID) (*entity.Product, error) {
	if delta.IsZero() {
		return nil, apperror.NewBadRequestError("quantity must be non-zero")
	}

	var product *entity.Product
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = applyProductDelta(ctx, tx, productID, delta)
		if err != nil {
			return err
		}
		return recordStockTransactions(ctx, tx, []entity.StockTransaction{{
			BusinessID:   product.BusinessID,
			ProductID:    productID,
			QtyInBase:    delta,
			SourceType:   source,
			SourceItemID: sourceItemID,
		}}, nil)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (l *stockLedger) Apply(ctx context.Context, mut *domainRepo.StockMutation) error {
	if mut == nil || (len(mut.Deltas) == 0 && len(mut.Audit) == 0) {
		return nil
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyStockMutation(ctx, tx, mut)
	})
}

type stockTransactionRepository struct {
	db *gorm.DB
}

// NewStockTransactionRepository creates a read-side repository for the audit log
func NewStockTransactionRepository(db *gorm.DB) domainRepo.StockTransactionRepository {
	return &stockTransactionRepository{db: db}
}

func (r *stockTransactionRepository) List(ctx context.Context, params domainRepo.StockTransactionFilterParams) ([]entity.StockTransaction, int64, error) {
	var txns []entity.StockTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockTransaction{}).
		Scopes(BusinessScope(ctx))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.Source != nil {
		query = query.Where("source_type = ?", *params.Source)
	}
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

// ListWithCursor pages the audit log by (created_at, id) keyset, newest first.
func (r *stockTransactionRepository) ListWithCursor(ctx context.Context, params domainRepo.StockTransactionCursorParams) ([]entity.StockTransaction, *pagination.CursorPagination, error) {
	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, nil, apperror.NewBadRequestError("Invalid cursor")
	}

	query := r.db.WithContext(ctx).Model(&entity.StockTransaction{}).
		Scopes(BusinessScope(ctx))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.Source != nil {
		query = query.Where("source_type = ?", *params.Source)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var txns []entity.StockTransaction
	err = query.
		Preload("Product").
		Order("created_at DESC, id DESC").
		Limit(params.Cursor.Limit + 1).
		Find(&txns).Error
	if err != nil {
		return nil, nil, err
	}

	page, txns := pagination.NewCursorPagination(txns, params.Cursor.Limit,
		func(t entity.StockTransaction) string { return t.ID.String() },
		func(t entity.StockTransaction) time.Time { return t.CreatedAt },
	)
	page.HasPrev = cursor != nil

	return txns, page, nil
}

func (r *stockTransactionRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockTransaction, error) {
	var txns []entity.StockTransaction
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}
