package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, params repository.ProductFilterParams) ([]entity.Product, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockProductRepo) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockProductRepo) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPurchaseRepo struct {
	mock.Mock
}

func (m *mockPurchaseRepo) CreateWithStock(ctx context.Context, purchase *entity.Purchase, mut *repository.StockMutation) error {
	return m.Called(ctx, purchase, mut).Error(0)
}

func (m *mockPurchaseRepo) UpdateWithStock(ctx context.Context, purchase *entity.Purchase, removedItemIDs []uuid.UUID, mut *repository.StockMutation) error {
	return m.Called(ctx, purchase, removedItemIDs, mut).Error(0)
}

func (m *mockPurchaseRepo) DeleteWithStock(ctx context.Context, id uuid.UUID, mut *repository.StockMutation) error {
	return m.Called(ctx, id, mut).Error(0)
}

func (m *mockPurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}

func (m *mockPurchaseRepo) List(ctx context.Context, params repository.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *mockPurchaseRepo) ListAll(ctx context.Context) ([]entity.Purchase, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Purchase), args.Error(1)
}

type mockInvoiceRepo struct {
	mock.Mock
}

func (m *mockInvoiceRepo) CreateWithStock(ctx context.Context, invoice *entity.Invoice, mut *repository.StockMutation) error {
	return m.Called(ctx, invoice, mut).Error(0)
}

func (m *mockInvoiceRepo) UpdateWithStock(ctx context.Context, invoice *entity.Invoice, removedItemIDs []uuid.UUID, mut *repository.StockMutation) error {
	return m.Called(ctx, invoice, removedItemIDs, mut).Error(0)
}

func (m *mockInvoiceRepo) DeleteWithStock(ctx context.Context, id uuid.UUID, mut *repository.StockMutation) error {
	return m.Called(ctx, id, mut).Error(0)
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) List(ctx context.Context, params repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *mockInvoiceRepo) ListAll(ctx context.Context) ([]entity.Invoice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

func (m *mockInvoiceRepo) AddPayment(ctx context.Context, payment *entity.Payment, invoice *entity.Invoice) error {
	return m.Called(ctx, payment, invoice).Error(0)
}

func (m *mockInvoiceRepo) DeletePayment(ctx context.Context, paymentID uuid.UUID, invoice *entity.Invoice) error {
	return m.Called(ctx, paymentID, invoice).Error(0)
}

func (m *mockInvoiceRepo) UpdateAggregates(ctx context.Context, invoice *entity.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *mockCustomerRepo) List(ctx context.Context, params repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
