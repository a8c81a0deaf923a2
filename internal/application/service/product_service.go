package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	infraRepo "github.com/smartbiz/smartbiz-api/internal/infrastructure/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/email"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
)

// ProductService handles the product catalog and manual stock adjustments
type ProductService struct {
	productRepo  repository.ProductRepository
	stockLedger  repository.StockLedger
	stockTxnRepo repository.StockTransactionRepository
	businessRepo repository.BusinessRepository
	emailService *email.EmailService
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	stockLedger repository.StockLedger,
	stockTxnRepo repository.StockTransactionRepository,
	businessRepo repository.BusinessRepository,
	emailService *email.EmailService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		stockLedger:  stockLedger,
		stockTxnRepo: stockTxnRepo,
		businessRepo: businessRepo,
		emailService: emailService,
	}
}

// ProductInput represents create/update product input
type ProductInput struct {
	Name              string
	Category          *string
	BaseUnit          quantity.Unit
	PricePerUnit      decimal.Decimal
	LowStockThreshold *decimal.Decimal
	OpeningStock      *decimal.Decimal
}

func (in *ProductInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if !in.BaseUnit.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "base_unit", Message: "unsupported unit"})
	}
	if in.PricePerUnit.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price_per_unit", Message: "price cannot be negative"})
	}
	if in.LowStockThreshold != nil && in.LowStockThreshold.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "low_stock_threshold", Message: "threshold cannot be negative"})
	}
	if in.OpeningStock != nil && in.OpeningStock.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "opening_stock", Message: "opening stock cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a product; a non-zero opening stock goes through the
// ledger so it is audited like any other movement.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	businessID, ok := infraRepo.GetBusinessID(ctx)
	if !ok {
		return nil, apperror.ErrForbidden
	}

	product := &entity.Product{
		BusinessID:        businessID,
		Name:              input.Name,
		Category:          input.Category,
		BaseUnit:          input.BaseUnit,
		PricePerUnit:      quantity.QuantizeMoney(input.PricePerUnit),
		StockQty:          decimal.Zero,
		LowStockThreshold: decimal.NewFromInt(1),
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = quantity.QuantizeStock(*input.LowStockThreshold)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if input.OpeningStock != nil && input.OpeningStock.IsPositive() {
		updated, err := s.stockLedger.Increase(ctx, product.ID, *input.OpeningStock, enum.StockSourceManual, nil)
		if err != nil {
			return nil, err
		}
		product.StockQty = updated.StockQty
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListAllProducts returns every product of the business (for exports)
func (s *ProductService) ListAllProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListAll(ctx)
}

// ListCategories lists the distinct product categories
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}

// UpdateProduct updates catalog fields. Stock is untouched here.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.Name = input.Name
	product.Category = input.Category
	product.BaseUnit = input.BaseUnit
	product.PricePerUnit = quantity.QuantizeMoney(input.PricePerUnit)
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = quantity.QuantizeStock(*input.LowStockThreshold)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// AdjustStockInput represents a manual stock correction
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     decimal.Decimal
	Unit      *quantity.Unit
}

// AdjustStock applies a signed manual correction through the ledger. The delta
// may be given in any unit convertible to the product's base unit.
func (s *ProductService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.Product, error) {
	if input.Delta.IsZero() {
		return nil, apperror.NewBadRequestError("Adjustment must be non-zero")
	}

	product, err := s.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	delta := input.Delta
	if input.Unit != nil {
		delta, err = quantity.Convert(delta, *input.Unit, product.BaseUnit)
		if err != nil {
			return nil, apperror.NewUnsupportedConversionError(string(*input.Unit), string(product.BaseUnit))
		}
	}

	if delta.IsPositive() {
		return s.stockLedger.Increase(ctx, product.ID, delta, enum.StockSourceManual, nil)
	}
	return s.stockLedger.Reduce(ctx, product.ID, delta.Abs(), enum.StockSourceManual, nil)
}

// QuotePriceInput represents a price quote request
type QuotePriceInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Unit      quantity.Unit
}

// QuotePrice prices a quantity in any convertible unit
func (s *ProductService) QuotePrice(ctx context.Context, input *QuotePriceInput) (decimal.Decimal, error) {
	product, err := s.GetProduct(ctx, input.ProductID)
	if err != nil {
		return decimal.Zero, err
	}

	price, err := product.PriceFor(input.Quantity, input.Unit)
	if err != nil {
		return decimal.Zero, apperror.NewUnsupportedConversionError(string(input.Unit), string(product.BaseUnit))
	}
	return price, nil
}

// ListLowStock returns products at or below their threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListLowStock(ctx)
}

// NotifyLowStock emails the owner the current low-stock list. Called
// explicitly, never as a hidden side effect of a stock mutation.
func (s *ProductService) NotifyLowStock(ctx context.Context) (int, error) {
	businessID, ok := infraRepo.GetBusinessID(ctx)
	if !ok {
		return 0, apperror.ErrForbidden
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return 0, err
	}
	if business == nil {
		return 0, apperror.NewNotFoundError("Business")
	}

	products, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	items := make([]email.LowStockItem, 0, len(products))
	for _, p := range products {
		items = append(items, email.LowStockItem{
			Name:      p.Name,
			Remaining: p.StockDisplay(),
			Threshold: quantity.FormatStock(p.LowStockThreshold, p.BaseUnit),
		})
	}

	if err := s.emailService.SendLowStockAlert(business.OwnerEmail, business.Name, items); err != nil {
		log.Printf("Warning: failed to send low stock alert to %s: %v", business.OwnerEmail, err)
		return 0, apperror.NewAppError(502, "Failed to send low stock alert")
	}

	return len(items), nil
}

// ListStockTransactions lists audit records with filtering
func (s *ProductService) ListStockTransactions(ctx context.Context, params repository.StockTransactionFilterParams) (*pagination.PaginatedResult[entity.StockTransaction], error) {
	txns, total, err := s.stockTxnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// ListStockTransactionsWithCursor pages the audit log by keyset cursor
func (s *ProductService) ListStockTransactionsWithCursor(ctx context.Context, params repository.StockTransactionCursorParams) (*pagination.CursorPaginatedResult[entity.StockTransaction], error) {
	txns, page, err := s.stockTxnRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewCursorPaginatedResult(txns, page), nil
}
