package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	infraRepo "github.com/smartbiz/smartbiz-api/internal/infrastructure/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
)

// PurchaseService handles purchase documents. Every lifecycle transition
// prepares a stock mutation that the repository applies atomically with the
// document write.
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
	}
}

// PurchaseItemInput represents one purchased line. ID is set when editing an
// existing item.
type PurchaseItemInput struct {
	ID        *uuid.UUID
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// PurchaseInput represents create/update purchase input
type PurchaseInput struct {
	Supplier string
	Company  *string
	Phone    *string
	Date     time.Time
	Items    []PurchaseItemInput
}

func validatePurchaseInput(input *PurchaseInput) error {
	var fieldErrors []apperror.FieldError
	if input.Supplier == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "supplier", Message: "supplier is required"})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range input.Items {
		if !item.Quantity.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be positive",
			})
		}
		if item.UnitCost.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_cost", i),
				Message: "unit cost cannot be negative",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewInvalidLineItemError(fieldErrors)
	}
	return nil
}

// fetchProducts batch-loads the referenced products and verifies they all
// belong to the current business.
func (s *PurchaseService) fetchProducts(ctx context.Context, items []PurchaseItemInput) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	for _, id := range ids {
		if _, ok := productMap[id]; !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
		}
	}
	return productMap, nil
}

// CreatePurchase creates a purchase; every line adds its quantity to stock
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *PurchaseInput) (*entity.Purchase, error) {
	if err := validatePurchaseInput(input); err != nil {
		return nil, err
	}

	businessID, ok := infraRepo.GetBusinessID(ctx)
	if !ok {
		return nil, apperror.ErrForbidden
	}

	if _, err := s.fetchProducts(ctx, input.Items); err != nil {
		return nil, err
	}

	changes := newStockChangeSet()
	total := decimal.Zero
	items := make([]entity.PurchaseItem, 0, len(input.Items))

	for _, in := range input.Items {
		item := entity.PurchaseItem{
			ID:        uuid.New(),
			ProductID: in.ProductID,
			Quantity:  quantity.QuantizeStock(in.Quantity),
			UnitCost:  quantity.QuantizeMoney(in.UnitCost),
		}
		total = total.Add(item.Quantity.Mul(item.UnitCost))
		itemID := item.ID
		changes.add(item.ProductID, item.Quantity, enum.StockSourcePurchase, &itemID)
		items = append(items, item)
	}

	purchase := &entity.Purchase{
		BusinessID: businessID,
		Supplier:   input.Supplier,
		Company:    input.Company,
		Phone:      input.Phone,
		Date:       input.Date,
		Total:      quantity.QuantizeMoney(total),
		Items:      items,
	}

	if err := s.purchaseRepo.CreateWithStock(ctx, purchase, changes.mutation()); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetByID(ctx, purchase.ID)
}

// UpdatePurchase edits a purchase and reconciles stock with the old state:
// added lines add stock, removed lines take it back, a quantity change applies
// the difference, and a product swap moves the old quantity off the old
// product before adding the new quantity to the new one.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, id uuid.UUID, input *PurchaseInput) (*entity.Purchase, error) {
	if err := validatePurchaseInput(input); err != nil {
		return nil, err
	}

	existing, err := s.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.fetchProducts(ctx, input.Items); err != nil {
		return nil, err
	}

	oldItems := make(map[uuid.UUID]*entity.PurchaseItem, len(existing.Items))
	for i := range existing.Items {
		oldItems[existing.Items[i].ID] = &existing.Items[i]
	}

	changes := newStockChangeSet()
	total := decimal.Zero
	items := make([]entity.PurchaseItem, 0, len(input.Items))
	kept := make(map[uuid.UUID]bool, len(input.Items))

	for _, in := range input.Items {
		newQty := quantity.QuantizeStock(in.Quantity)

		item := entity.PurchaseItem{
			ProductID: in.ProductID,
			Quantity:  newQty,
			UnitCost:  quantity.QuantizeMoney(in.UnitCost),
		}

		if in.ID != nil {
			old, ok := oldItems[*in.ID]
			if !ok {
				return nil, apperror.NewNotFoundError("Purchase item")
			}
			kept[*in.ID] = true
			item.ID = old.ID
			itemID := item.ID

			if old.ProductID != in.ProductID {
				changes.add(old.ProductID, old.Quantity.Neg(), enum.StockSourcePurchase, &itemID)
				changes.add(in.ProductID, newQty, enum.StockSourcePurchase, &itemID)
			} else {
				changes.add(in.ProductID, newQty.Sub(old.Quantity), enum.StockSourcePurchase, &itemID)
			}
		} else {
			item.ID = uuid.New()
			itemID := item.ID
			changes.add(in.ProductID, newQty, enum.StockSourcePurchase, &itemID)
		}

		total = total.Add(item.Quantity.Mul(item.UnitCost))
		items = append(items, item)
	}

	var removedIDs []uuid.UUID
	for itemID, old := range oldItems {
		if !kept[itemID] {
			removedIDs = append(removedIDs, itemID)
			removedItemID := itemID
			changes.add(old.ProductID, old.Quantity.Neg(), enum.StockSourcePurchase, &removedItemID)
		}
	}

	existing.Supplier = input.Supplier
	existing.Company = input.Company
	existing.Phone = input.Phone
	existing.Date = input.Date
	existing.Total = quantity.QuantizeMoney(total)
	existing.Items = items

	if err := s.purchaseRepo.UpdateWithStock(ctx, existing, removedIDs, changes.mutation()); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetByID(ctx, id)
}

// DeletePurchase deletes a purchase and takes its stock back out
func (s *PurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	existing, err := s.GetPurchase(ctx, id)
	if err != nil {
		return err
	}

	changes := newStockChangeSet()
	for i := range existing.Items {
		itemID := existing.Items[i].ID
		changes.add(existing.Items[i].ProductID, existing.Items[i].Quantity.Neg(), enum.StockSourcePurchase, &itemID)
	}

	return s.purchaseRepo.DeleteWithStock(ctx, id, changes.mutation())
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ListAllPurchases returns every purchase of the business (for exports)
func (s *PurchaseService) ListAllPurchases(ctx context.Context) ([]entity.Purchase, error) {
	return s.purchaseRepo.ListAll(ctx)
}
