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

// InvoiceService handles invoices, their line items and payments. A multi-line
// edit is all-or-nothing: availability is checked for every line up front and
// a single rejection leaves stock untouched.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// InvoiceItemInput represents one sold line. UOM is a multiplier in the
// product's base unit and defaults to 1; UnitPrice defaults to the product's
// catalog price.
type InvoiceItemInput struct {
	ID         *uuid.UUID
	ProductID  uuid.UUID
	UOM        *decimal.Decimal
	Quantity   decimal.Decimal
	UnitPrice  *decimal.Decimal
	TaxPercent decimal.Decimal
}

// InvoiceInput represents create/update invoice input
type InvoiceInput struct {
	CustomerID *uuid.UUID
	Date       time.Time
	Notes      *string
	Items      []InvoiceItemInput
}

var hundred = decimal.NewFromInt(100)

func validateInvoiceInput(input *InvoiceInput) error {
	var fieldErrors []apperror.FieldError
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
		if item.UOM != nil && !item.UOM.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].uom", i),
				Message: "uom must be positive",
			})
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: "unit price cannot be negative",
			})
		}
		if item.TaxPercent.IsNegative() || item.TaxPercent.GreaterThan(hundred) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].tax_percent", i),
				Message: "tax percent must be between 0 and 100",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewInvalidLineItemError(fieldErrors)
	}
	return nil
}

func (s *InvoiceService) fetchProducts(ctx context.Context, items []InvoiceItemInput) (map[uuid.UUID]*entity.Product, error) {
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

// checkAvailability rejects the whole edit when any product's net requirement
// exceeds its current stock. Quantities still held by this invoice's existing
// items count as credit: growing a line from 3 to 5 only needs 2 more.
func (s *InvoiceService) checkAvailability(ctx context.Context, products map[uuid.UUID]*entity.Product, required, credit map[uuid.UUID]decimal.Decimal) error {
	var violations []apperror.StockViolation
	for productID, req := range required {
		product := products[productID]
		if product == nil {
			var err error
			product, err = s.productRepo.GetByID(ctx, productID)
			if err != nil {
				return err
			}
			if product == nil {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", productID))
			}
		}

		net := req.Sub(credit[productID])
		if net.GreaterThan(product.StockQty) {
			violations = append(violations, apperror.StockViolation{
				ProductID:   product.ID.String(),
				ProductName: product.Name,
				Requested:   quantity.FormatStock(net, product.BaseUnit),
				Available:   product.StockDisplay(),
			})
		}
	}
	if len(violations) > 0 {
		return apperror.NewInsufficientStockError(violations)
	}
	return nil
}

func buildInvoiceItem(in InvoiceItemInput, product *entity.Product) entity.InvoiceItem {
	uom := decimal.NewFromInt(1)
	if in.UOM != nil {
		uom = *in.UOM
	}
	unitPrice := product.PricePerUnit
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}

	item := entity.InvoiceItem{
		ProductID:  in.ProductID,
		UOM:        uom,
		Quantity:   in.Quantity,
		UnitPrice:  quantity.QuantizeMoney(unitPrice),
		TaxPercent: in.TaxPercent,
	}
	item.RecalcLine()
	return item
}

// CreateInvoice creates an invoice; every line takes its base-unit quantity
// out of stock. The invoice number is drawn inside the same transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	businessID, ok := infraRepo.GetBusinessID(ctx)
	if !ok {
		return nil, apperror.ErrForbidden
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	products, err := s.fetchProducts(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	required := make(map[uuid.UUID]decimal.Decimal)
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	for _, in := range input.Items {
		item := buildInvoiceItem(in, products[in.ProductID])
		item.ID = uuid.New()
		required[in.ProductID] = required[in.ProductID].Add(item.QuantityInBase())
		items = append(items, item)
	}

	if err := s.checkAvailability(ctx, products, required, nil); err != nil {
		return nil, err
	}

	changes := newStockChangeSet()
	for i := range items {
		itemID := items[i].ID
		changes.add(items[i].ProductID, items[i].QuantityInBase().Neg(), enum.StockSourceSale, &itemID)
	}

	invoice := &entity.Invoice{
		BusinessID: businessID,
		CustomerID: input.CustomerID,
		Date:       input.Date,
		Notes:      input.Notes,
		Items:      items,
	}
	invoice.RecalcTotals(items, nil)

	if err := s.invoiceRepo.CreateWithStock(ctx, invoice, changes.mutation()); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// UpdateInvoice edits an invoice. Availability is checked against the net
// requirement per product, then stock is reconciled line by line: removed
// lines restore their quantity, a product swap restores the old product
// before charging the new one, and a quantity change applies the difference.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *InvoiceInput) (*entity.Invoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	existing, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	products, err := s.fetchProducts(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	oldItems := make(map[uuid.UUID]*entity.InvoiceItem, len(existing.Items))
	credit := make(map[uuid.UUID]decimal.Decimal)
	for i := range existing.Items {
		old := &existing.Items[i]
		oldItems[old.ID] = old
		credit[old.ProductID] = credit[old.ProductID].Add(old.QuantityInBase())
	}

	required := make(map[uuid.UUID]decimal.Decimal)
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	kept := make(map[uuid.UUID]bool, len(input.Items))

	for _, in := range input.Items {
		if in.ID != nil {
			if _, ok := oldItems[*in.ID]; !ok {
				return nil, apperror.NewNotFoundError("Invoice item")
			}
		}
		item := buildInvoiceItem(in, products[in.ProductID])
		if in.ID != nil {
			item.ID = *in.ID
			kept[*in.ID] = true
		} else {
			item.ID = uuid.New()
		}
		required[in.ProductID] = required[in.ProductID].Add(item.QuantityInBase())
		items = append(items, item)
	}

	if err := s.checkAvailability(ctx, products, required, credit); err != nil {
		return nil, err
	}

	changes := newStockChangeSet()
	for i := range items {
		item := &items[i]
		itemID := item.ID

		if old, ok := oldItems[item.ID]; ok && kept[item.ID] {
			if old.ProductID != item.ProductID {
				changes.add(old.ProductID, old.QuantityInBase(), enum.StockSourceSale, &itemID)
				changes.add(item.ProductID, item.QuantityInBase().Neg(), enum.StockSourceSale, &itemID)
			} else {
				changes.add(item.ProductID, old.QuantityInBase().Sub(item.QuantityInBase()), enum.StockSourceSale, &itemID)
			}
		} else {
			changes.add(item.ProductID, item.QuantityInBase().Neg(), enum.StockSourceSale, &itemID)
		}
	}

	var removedIDs []uuid.UUID
	for itemID, old := range oldItems {
		if !kept[itemID] {
			removedIDs = append(removedIDs, itemID)
			removedItemID := itemID
			changes.add(old.ProductID, old.QuantityInBase(), enum.StockSourceSale, &removedItemID)
		}
	}

	existing.CustomerID = input.CustomerID
	existing.Date = input.Date
	existing.Notes = input.Notes
	existing.Items = items
	existing.RecalcTotals(items, existing.Payments)

	if err := s.invoiceRepo.UpdateWithStock(ctx, existing, removedIDs, changes.mutation()); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, id)
}

// DeleteInvoice deletes an invoice and restores the stock its lines held
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	existing, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	changes := newStockChangeSet()
	for i := range existing.Items {
		itemID := existing.Items[i].ID
		changes.add(existing.Items[i].ProductID, existing.Items[i].QuantityInBase(), enum.StockSourceSale, &itemID)
	}

	return s.invoiceRepo.DeleteWithStock(ctx, id, changes.mutation())
}

// GetInvoice retrieves an invoice with items and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListAllInvoices returns every invoice of the business (for exports)
func (s *InvoiceService) ListAllInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return s.invoiceRepo.ListAll(ctx)
}

// NextInvoiceNo previews the number the next invoice dated on date would get
func (s *InvoiceService) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	return s.invoiceRepo.NextInvoiceNo(ctx, date)
}

// PaymentInput represents a payment against an invoice
type PaymentInput struct {
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Notes       *string
}

// AddPayment records a payment and refreshes the invoice aggregates, moving
// status through pending, partial and paid as the balance closes.
func (s *InvoiceService) AddPayment(ctx context.Context, invoiceID uuid.UUID, input *PaymentInput) (*entity.Invoice, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ID:          uuid.New(),
		InvoiceID:   invoice.ID,
		Amount:      quantity.QuantizeMoney(input.Amount),
		PaymentDate: input.PaymentDate,
		Method:      input.Method,
		Notes:       input.Notes,
	}

	payments := append(invoice.Payments, *payment)
	invoice.RecalcTotals(invoice.Items, payments)

	if err := s.invoiceRepo.AddPayment(ctx, payment, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// DeletePayment removes a payment and refreshes the invoice aggregates
func (s *InvoiceService) DeletePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	remaining := make([]entity.Payment, 0, len(invoice.Payments))
	found := false
	for _, p := range invoice.Payments {
		if p.ID == paymentID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return nil, apperror.NewNotFoundError("Payment")
	}

	invoice.RecalcTotals(invoice.Items, remaining)

	if err := s.invoiceRepo.DeletePayment(ctx, paymentID, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// RecalcInvoice recomputes and persists the aggregates from current lines and
// payments. Safe to call any number of times.
func (s *InvoiceService) RecalcInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.RecalcTotals(invoice.Items, invoice.Payments)

	if err := s.invoiceRepo.UpdateAggregates(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}
