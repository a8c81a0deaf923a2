package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInvoiceService() (*InvoiceService, *mockInvoiceRepo, *mockProductRepo, *mockCustomerRepo) {
	invoiceRepo := new(mockInvoiceRepo)
	productRepo := new(mockProductRepo)
	customerRepo := new(mockCustomerRepo)
	return NewInvoiceService(invoiceRepo, productRepo, customerRepo), invoiceRepo, productRepo, customerRepo
}

func TestCreateInvoice(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	product := kgProduct("Rice", "10")
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotInvoice *entity.Invoice
	var gotMut *repository.StockMutation
	invoiceRepo.On("CreateWithStock", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotInvoice = args.Get(1).(*entity.Invoice)
			gotMut = args.Get(2).(*repository.StockMutation)
		}).Return(nil)
	invoiceRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entity.Invoice{}, nil)

	_, err := svc.CreateInvoice(businessCtx(), &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: dec("2"), TaxPercent: dec("18")},
		},
	})

	assert.NoError(t, err)

	// UOM and unit price default to 1 and the catalog price
	item := gotInvoice.Items[0]
	assert.True(t, dec("1").Equal(item.UOM))
	assert.True(t, product.PricePerUnit.Equal(item.UnitPrice))
	assert.True(t, dec("80").Equal(item.LineTotal), "line total = %s", item.LineTotal)
	assert.True(t, dec("14.4").Equal(item.TaxAmount))
	assert.True(t, dec("94.4").Equal(gotInvoice.Total), "total = %s", gotInvoice.Total)
	assert.Equal(t, enum.InvoiceStatusPending, gotInvoice.Status)

	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("-2").Equal(gotMut.Deltas[0].Delta), "delta = %s", gotMut.Deltas[0].Delta)
	assert.Equal(t, enum.StockSourceSale, gotMut.Audit[0].SourceType)
}

func TestCreateInvoiceInsufficientStock(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	product := kgProduct("Rice", "2")
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	_, err := svc.CreateInvoice(businessCtx(), &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: dec("5"), TaxPercent: dec("0")},
		},
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Len(t, appErr.Violations, 1)
	assert.Equal(t, "Rice", appErr.Violations[0].ProductName)
	invoiceRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInvoiceUnknownCustomer(t *testing.T) {
	svc, invoiceRepo, _, customerRepo := newInvoiceService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(nil, nil)

	_, err := svc.CreateInvoice(businessCtx(), &InvoiceInput{
		CustomerID: &customerID,
		Date:       time.Now(),
		Items: []InvoiceItemInput{
			{ProductID: uuid.New(), Quantity: dec("1")},
		},
	})

	assert.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	invoiceRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInvoiceRejectsBadLines(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService()

	uom := dec("0")
	_, err := svc.CreateInvoice(businessCtx(), &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ProductID: uuid.New(), UOM: &uom, Quantity: dec("1"), TaxPercent: dec("150")},
		},
	})

	assert.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
	invoiceRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything, mock.Anything)
}

func soldLine(productID uuid.UUID, qty string) entity.InvoiceItem {
	item := entity.InvoiceItem{
		ID:         uuid.New(),
		ProductID:  productID,
		UOM:        dec("1"),
		Quantity:   dec(qty),
		UnitPrice:  dec("40"),
		TaxPercent: decimal.Zero,
	}
	item.RecalcLine()
	return item
}

func TestUpdateInvoiceCreditsHeldQuantity(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	// Stock shows 2 because the existing line already took its 3 out.
	// Growing the line to 5 only needs 2 more, which is available.
	product := kgProduct("Rice", "2")
	item := soldLine(product.ID, "3")
	existing := &entity.Invoice{ID: uuid.New(), Items: []entity.InvoiceItem{item}}

	invoiceRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotMut *repository.StockMutation
	invoiceRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMut = args.Get(3).(*repository.StockMutation)
		}).Return(nil)

	_, err := svc.UpdateInvoice(businessCtx(), existing.ID, &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ID: &item.ID, ProductID: product.ID, Quantity: dec("5")},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("-2").Equal(gotMut.Deltas[0].Delta), "delta = %s", gotMut.Deltas[0].Delta)
}

func TestUpdateInvoiceRejectsBeyondCredit(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	product := kgProduct("Rice", "2")
	item := soldLine(product.ID, "3")
	existing := &entity.Invoice{ID: uuid.New(), Items: []entity.InvoiceItem{item}}

	invoiceRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	_, err := svc.UpdateInvoice(businessCtx(), existing.ID, &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ID: &item.ID, ProductID: product.ID, Quantity: dec("6")},
		},
	})

	assert.True(t, apperror.IsInsufficientStock(err))
	invoiceRepo.AssertNotCalled(t, "UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateInvoiceProductSwap(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	oldProduct := kgProduct("Rice", "0")
	newProduct := kgProduct("Wheat", "10")
	item := soldLine(oldProduct.ID, "3")
	existing := &entity.Invoice{ID: uuid.New(), Items: []entity.InvoiceItem{item}}

	invoiceRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{newProduct}, nil)

	var gotMut *repository.StockMutation
	invoiceRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMut = args.Get(3).(*repository.StockMutation)
		}).Return(nil)

	_, err := svc.UpdateInvoice(businessCtx(), existing.ID, &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ID: &item.ID, ProductID: newProduct.ID, Quantity: dec("4")},
		},
	})

	assert.NoError(t, err)

	deltas := make(map[uuid.UUID]string, 2)
	for _, d := range gotMut.Deltas {
		deltas[d.ProductID] = d.Delta.String()
	}
	assert.Equal(t, "3", deltas[oldProduct.ID])
	assert.Equal(t, "-4", deltas[newProduct.ID])
}

func TestUpdateInvoiceReplacesCustomer(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	product := kgProduct("Rice", "10")
	item := soldLine(product.ID, "2")
	customerID := uuid.New()
	existing := &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: &customerID,
		Items:      []entity.InvoiceItem{item},
	}

	invoiceRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotInvoice *entity.Invoice
	invoiceRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotInvoice = args.Get(1).(*entity.Invoice)
		}).Return(nil)

	// Full-replace semantics: leaving the customer out detaches it
	_, err := svc.UpdateInvoice(businessCtx(), existing.ID, &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ID: &item.ID, ProductID: product.ID, Quantity: dec("2")},
		},
	})

	assert.NoError(t, err)
	assert.Nil(t, gotInvoice.CustomerID)
}

func TestUpdateInvoiceRemovedLineRestores(t *testing.T) {
	svc, invoiceRepo, productRepo, _ := newInvoiceService()

	product := kgProduct("Rice", "0")
	kept := soldLine(product.ID, "2")
	removed := soldLine(product.ID, "3")
	existing := &entity.Invoice{ID: uuid.New(), Items: []entity.InvoiceItem{kept, removed}}

	invoiceRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]entity.Product{product}, nil)

	var gotMut *repository.StockMutation
	var gotRemoved []uuid.UUID
	invoiceRepo.On("UpdateWithStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotRemoved = args.Get(2).([]uuid.UUID)
			gotMut = args.Get(3).(*repository.StockMutation)
		}).Return(nil)

	_, err := svc.UpdateInvoice(businessCtx(), existing.ID, &InvoiceInput{
		Date: time.Now(),
		Items: []InvoiceItemInput{
			{ID: &kept.ID, ProductID: product.ID, Quantity: dec("2")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{removed.ID}, gotRemoved)

	// Kept line unchanged, removed line returns its 3 to stock
	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("3").Equal(gotMut.Deltas[0].Delta), "delta = %s", gotMut.Deltas[0].Delta)
}

func TestDeleteInvoiceRestoresStock(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService()

	product := kgProduct("Rice", "0")
	existing := &entity.Invoice{
		ID:    uuid.New(),
		Items: []entity.InvoiceItem{soldLine(product.ID, "5")},
	}

	invoiceRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	var gotMut *repository.StockMutation
	invoiceRepo.On("DeleteWithStock", mock.Anything, existing.ID, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMut = args.Get(2).(*repository.StockMutation)
		}).Return(nil)

	err := svc.DeleteInvoice(businessCtx(), existing.ID)

	assert.NoError(t, err)
	assert.Len(t, gotMut.Deltas, 1)
	assert.True(t, dec("5").Equal(gotMut.Deltas[0].Delta))
}

func TestAddPayment(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService()

	line := entity.InvoiceItem{
		ID: uuid.New(), ProductID: uuid.New(),
		UOM: dec("1"), Quantity: dec("1"), UnitPrice: dec("100"), TaxPercent: decimal.Zero,
	}
	line.RecalcLine()
	invoice := &entity.Invoice{
		ID:     uuid.New(),
		Items:  []entity.InvoiceItem{line},
		Status: enum.InvoiceStatusPending,
	}
	invoice.RecalcTotals(invoice.Items, nil)

	invoiceRepo.On("GetByID", mock.Anything, invoice.ID).Return(invoice, nil)

	var gotPayment *entity.Payment
	var gotInvoice *entity.Invoice
	invoiceRepo.On("AddPayment", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotPayment = args.Get(1).(*entity.Payment)
			gotInvoice = args.Get(2).(*entity.Invoice)
			// Persist like the real repository would, the next GetByID
			// must see the payment
			invoice.Payments = append(invoice.Payments, *gotPayment)
		}).Return(nil)

	_, err := svc.AddPayment(businessCtx(), invoice.ID, &PaymentInput{
		Amount:      dec("40"),
		PaymentDate: time.Now(),
		Method:      "cash",
	})

	assert.NoError(t, err)
	assert.Equal(t, invoice.ID, gotPayment.InvoiceID)
	assert.True(t, dec("40").Equal(gotPayment.Amount))
	assert.True(t, dec("40").Equal(gotInvoice.AmountPaid))
	assert.Equal(t, enum.InvoiceStatusPartial, gotInvoice.Status)

	// A second payment closes the balance
	_, err = svc.AddPayment(businessCtx(), invoice.ID, &PaymentInput{
		Amount:      dec("60"),
		PaymentDate: time.Now(),
		Method:      "upi",
	})

	assert.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, gotInvoice.Status)
}

func TestAddPaymentRejectsNonPositive(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService()

	_, err := svc.AddPayment(businessCtx(), uuid.New(), &PaymentInput{
		Amount:      dec("0"),
		PaymentDate: time.Now(),
	})

	assert.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	invoiceRepo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePayment(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService()

	line := entity.InvoiceItem{
		ID: uuid.New(), ProductID: uuid.New(),
		UOM: dec("1"), Quantity: dec("1"), UnitPrice: dec("100"), TaxPercent: decimal.Zero,
	}
	line.RecalcLine()
	payment := entity.Payment{ID: uuid.New(), Amount: dec("100")}
	invoice := &entity.Invoice{
		ID:       uuid.New(),
		Items:    []entity.InvoiceItem{line},
		Payments: []entity.Payment{payment},
	}
	invoice.RecalcTotals(invoice.Items, invoice.Payments)
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)

	invoiceRepo.On("GetByID", mock.Anything, invoice.ID).Return(invoice, nil)

	var gotInvoice *entity.Invoice
	invoiceRepo.On("DeletePayment", mock.Anything, payment.ID, mock.Anything).
		Run(func(args mock.Arguments) {
			gotInvoice = args.Get(2).(*entity.Invoice)
		}).Return(nil)

	_, err := svc.DeletePayment(businessCtx(), invoice.ID, payment.ID)

	assert.NoError(t, err)
	assert.True(t, gotInvoice.AmountPaid.IsZero())
	assert.Equal(t, enum.InvoiceStatusPending, gotInvoice.Status)
}

func TestDeletePaymentNotFound(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService()

	invoice := &entity.Invoice{ID: uuid.New()}
	invoiceRepo.On("GetByID", mock.Anything, invoice.ID).Return(invoice, nil)

	_, err := svc.DeletePayment(businessCtx(), invoice.ID, uuid.New())

	assert.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	invoiceRepo.AssertNotCalled(t, "DeletePayment", mock.Anything, mock.Anything, mock.Anything)
}
