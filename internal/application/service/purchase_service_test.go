package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	infraRepo "github.com/smartbiz/smartbiz-api/internal/infrastructure/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func businessCtx() context.Context {
	return infraRepo.WithBusiness(context.Background(), uuid.New())
}

func kgProduct(name string, stock string) entity.Product {
	return entity.Product{
		ID:           uuid.New(),
		Name:         name,
		BaseUnit:     quantity.UnitKilogram,
		PricePerUnit: dec("40"),
		StockQty:     dec(stock),
	}
}

func TestCreatePurchase(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	product := kgProduct("Rice", "10")
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotMut *repository.StockMutation
	var gotPurchase *entity.Purchase
	purchaseRepo.On("CreateWithStock", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotPurchase = args.Get(1).(*entity.Purchase)
			gotMut = args.Get(2).(*repository.StockMutation)
		}).Return(nil)
	purchaseRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.Purchase{}, nil)

	_, err := svc.CreatePurchase(businessCtx(), &PurchaseInput{
		Supplier: "Agro Traders",
		Date:     time.Now(),
		Items: []PurchaseItemInput{
			{ProductID: product.ID, Quantity: dec("5"), UnitCost: dec("32.50")},
		},
	})

	assert.NoError(t, err)
	assert.True(t, dec("162.5").Equal(gotPurchase.Total), "total = %s", gotPurchase.Total)

	assert.Len(t, gotMut.Deltas, 1)
	assert.Equal(t, product.ID, gotMut.Deltas[0].ProductID)
	assert.True(t, dec("5").Equal(gotMut.Deltas[0].Delta))

	assert.Len(t, gotMut.Audit, 1)
	assert.Equal(t, enum.StockSourcePurchase, gotMut.Audit[0].SourceType)
	assert.Equal(t, gotPurchase.Items[0].ID, *gotMut.Audit[0].SourceItemID)
}

func TestCreatePurchaseRejectsBadLines(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	_, err := svc.CreatePurchase(businessCtx(), &PurchaseInput{
		Supplier: "Agro Traders",
		Date:     time.Now(),
		Items: []PurchaseItemInput{
			{ProductID: uuid.New(), Quantity: dec("0"), UnitCost: dec("-1")},
		},
	})

	assert.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
	purchaseRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePurchaseQuantityChange(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	product := kgProduct("Rice", "10")
	itemID := uuid.New()
	existing := &entity.Purchase{
		ID:       uuid.New(),
		Supplier: "Agro Traders",
		Items: []entity.PurchaseItem{
			{ID: itemID, ProductID: product.ID, Quantity: dec("5"), UnitCost: dec("30")},
		},
	}

	purchaseRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotMut *repository.StockMutation
	var gotRemoved []uuid.UUID
	purchaseRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotRemoved = args.Get(2).([]uuid.UUID)
			gotMut = args.Get(3).(*repository.StockMutation)
		}).Return(nil)

	_, err := svc.UpdatePurchase(businessCtx(), existing.ID, &PurchaseInput{
		Supplier: "Agro Traders",
		Date:     time.Now(),
		Items: []PurchaseItemInput{
			{ID: &itemID, ProductID: product.ID, Quantity: dec("8"), UnitCost: dec("30")},
		},
	})

	assert.NoError(t, err)
	assert.Empty(t, gotRemoved)
	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("3").Equal(gotMut.Deltas[0].Delta), "delta = %s", gotMut.Deltas[0].Delta)
}

func TestUpdatePurchaseProductSwap(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	oldProduct := kgProduct("Rice", "10")
	newProduct := kgProduct("Wheat", "10")
	itemID := uuid.New()
	existing := &entity.Purchase{
		ID: uuid.New(),
		Items: []entity.PurchaseItem{
			{ID: itemID, ProductID: oldProduct.ID, Quantity: dec("5"), UnitCost: dec("30")},
		},
	}

	purchaseRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{newProduct}, nil)

	var gotMut *repository.StockMutation
	purchaseRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMut = args.Get(3).(*repository.StockMutation)
		}).Return(nil)

	_, err := svc.UpdatePurchase(businessCtx(), existing.ID, &PurchaseInput{
		Supplier: "Agro Traders",
		Date:     time.Now(),
		Items: []PurchaseItemInput{
			{ID: &itemID, ProductID: newProduct.ID, Quantity: dec("3"), UnitCost: dec("28")},
		},
	})

	assert.NoError(t, err)

	deltas := make(map[uuid.UUID]string, 2)
	for _, d := range gotMut.Deltas {
		deltas[d.ProductID] = d.Delta.String()
	}
	assert.Equal(t, "-5", deltas[oldProduct.ID])
	assert.Equal(t, "3", deltas[newProduct.ID])

	// Both audit rows trace back to the same line item
	assert.Len(t, gotMut.Audit, 2)
	for _, a := range gotMut.Audit {
		assert.Equal(t, itemID, *a.SourceItemID)
	}
}

func TestUpdatePurchaseRemovedLine(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	product := kgProduct("Rice", "10")
	keptID := uuid.New()
	removedID := uuid.New()
	existing := &entity.Purchase{
		ID: uuid.New(),
		Items: []entity.PurchaseItem{
			{ID: keptID, ProductID: product.ID, Quantity: dec("5"), UnitCost: dec("30")},
			{ID: removedID, ProductID: product.ID, Quantity: dec("2"), UnitCost: dec("30")},
		},
	}

	purchaseRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotMut *repository.StockMutation
	var gotRemoved []uuid.UUID
	purchaseRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotRemoved = args.Get(2).([]uuid.UUID)
			gotMut = args.Get(3).(*repository.StockMutation)
		}).Return(nil)

	_, err := svc.UpdatePurchase(businessCtx(), existing.ID, &PurchaseInput{
		Supplier: "Agro Traders",
		Date:     time.Now(),
		Items: []PurchaseItemInput{
			{ID: &keptID, ProductID: product.ID, Quantity: dec("5"), UnitCost: dec("30")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{removedID}, gotRemoved)

	// Kept line unchanged, removed line reversed: net -2
	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("-2").Equal(gotMut.Deltas[0].Delta), "delta = %s", gotMut.Deltas[0].Delta)
}

func TestUpdatePurchaseUnknownItemID(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	product := kgProduct("Rice", "10")
	existing := &entity.Purchase{ID: uuid.New()}

	purchaseRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	strayID := uuid.New()
	_, err := svc.UpdatePurchase(businessCtx(), existing.ID, &PurchaseInput{
		Supplier: "Agro Traders",
		Date:     time.Now(),
		Items: []PurchaseItemInput{
			{ID: &strayID, ProductID: product.ID, Quantity: dec("1"), UnitCost: dec("30")},
		},
	})

	assert.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	purchaseRepo.AssertNotCalled(t, "UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePurchase(t *testing.T) {
	productRepo := new(mockProductRepo)
	purchaseRepo := new(mockPurchaseRepo)
	svc := NewPurchaseService(purchaseRepo, productRepo)

	product := kgProduct("Rice", "10")
	existing := &entity.Purchase{
		ID: uuid.New(),
		Items: []entity.PurchaseItem{
			{ID: uuid.New(), ProductID: product.ID, Quantity: dec("5"), UnitCost: dec("30")},
		},
	}

	purchaseRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	var gotMut *repository.StockMutation
	purchaseRepo.On("DeleteWithStock", mock.Anything, existing.ID, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMut = args.Get(2).(*repository.StockMutation)
		}).Return(nil)

	err := svc.DeletePurchase(businessCtx(), existing.ID)

	assert.NoError(t, err)
	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("-5").Equal(gotMut.Deltas[0].Delta))
}
