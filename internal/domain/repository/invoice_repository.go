package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
)

// InvoiceFilterParams represents filtering and pagination parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// InvoiceRepository persists invoices, their items and payments. As with
// purchases, the *WithStock methods couple the document write and the stock
// mutation in one transaction.
type InvoiceRepository interface {
	// CreateWithStock stores an invoice with its items and applies the stock
	// reductions. When invoice.InvoiceNo is empty it is assigned inside the
	// transaction, under the business row lock, so numbers never collide.
	CreateWithStock(ctx context.Context, invoice *entity.Invoice, mut *StockMutation) error
	// UpdateWithStock saves the header and aggregates, upserts invoice.Items,
	// deletes the removed items and applies the net stock deltas
	UpdateWithStock(ctx context.Context, invoice *entity.Invoice, removedItemIDs []uuid.UUID, mut *StockMutation) error
	// DeleteWithStock soft-deletes an invoice and returns its stock
	DeleteWithStock(ctx context.Context, id uuid.UUID, mut *StockMutation) error
	// GetByID retrieves an invoice with its items, products, payments and customer
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// List retrieves invoices with filtering and pagination
	List(ctx context.Context, params InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListAll retrieves every invoice of the current business, unpaginated
	ListAll(ctx context.Context) ([]entity.Invoice, error)
	// NextInvoiceNo previews the number the next invoice dated on date would get
	NextInvoiceNo(ctx context.Context, date time.Time) (string, error)
	// AddPayment stores a payment and the recomputed invoice aggregates atomically
	AddPayment(ctx context.Context, payment *entity.Payment, invoice *entity.Invoice) error
	// DeletePayment removes a payment and stores the recomputed aggregates atomically
	DeletePayment(ctx context.Context, paymentID uuid.UUID, invoice *entity.Invoice) error
	// UpdateAggregates persists only the derived aggregate fields of an invoice
	UpdateAggregates(ctx context.Context, invoice *entity.Invoice) error
}
