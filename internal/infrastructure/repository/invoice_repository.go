package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	domainRepo "github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// nextInvoiceNoTx issues the next YYYYMMDD-NNN number for the business. The
// business row is locked FOR UPDATE first so two concurrent creates cannot
// draw the same number; soft-deleted invoices still count so numbers are
// never reused.
func nextInvoiceNoTx(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, date time.Time) (string, error) {
	var business entity.Business
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&business, "id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.NewNotFoundError("Business")
	}
	if err != nil {
		return "", err
	}

	prefix := date.Format("20060102")

	var nos []string
	err = tx.WithContext(ctx).Model(&entity.Invoice{}).Unscoped().
		Where("business_id = ? AND invoice_no LIKE ?", businessID, prefix+"-%").
		Pluck("invoice_no", &nos).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%03d", prefix, nextInvoiceSequence(nos, prefix)), nil
}

// nextInvoiceSequence returns max numeric suffix + 1. The suffixes must be
// compared as numbers, not strings: "999" sorts above "1000" lexically, so a
// string ORDER BY would hand out 1000 twice once a day passes 999 invoices.
func nextInvoiceSequence(nos []string, prefix string) int {
	max := 0
	for _, no := range nos {
		if n, err := strconv.Atoi(strings.TrimPrefix(no, prefix+"-")); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func (r *invoiceRepository) CreateWithStock(ctx context.Context, invoice *entity.Invoice, mut *domainRepo.StockMutation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if invoice.InvoiceNo == "" {
			no, err := nextInvoiceNoTx(ctx, tx, invoice.BusinessID, invoice.Date)
			if err != nil {
				return err
			}
			invoice.InvoiceNo = no
		}
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		return applyStockMutation(ctx, tx, mut)
	})
}

func (r *invoiceRepository) UpdateWithStock(ctx context.Context, invoice *entity.Invoice, removedItemIDs []uuid.UUID, mut *domainRepo.StockMutation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.Invoice{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"customer_id": invoice.CustomerID,
				"date":        invoice.Date,
				"notes":       invoice.Notes,
			}).Error
		if err != nil {
			return err
		}

		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
			if err := tx.Save(&invoice.Items[i]).Error; err != nil {
				return err
			}
		}

		if len(removedItemIDs) > 0 {
			err := tx.Where("invoice_id = ? AND id IN ?", invoice.ID, removedItemIDs).
				Delete(&entity.InvoiceItem{}).Error
			if err != nil {
				return err
			}
		}

		if err := updateAggregatesTx(tx, invoice); err != nil {
			return err
		}

		return applyStockMutation(ctx, tx, mut)
	})
}

func (r *invoiceRepository) DeleteWithStock(ctx context.Context, id uuid.UUID, mut *domainRepo.StockMutation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(BusinessScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error; err != nil {
			return err
		}
		return applyStockMutation(ctx, tx, mut)
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Items").Preload("Items.Product").
		Preload("Payments").
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(BusinessScope(ctx))

	if params.Search != "" {
		query = query.Where(
			"invoice_no ILIKE ? OR customer_id IN (SELECT id FROM customers WHERE name ILIKE ?)",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
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
		Preload("Customer").
		Order("date DESC, invoice_no DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListAll(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Customer").
		Order("date ASC, invoice_no ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	businessID, ok := GetBusinessID(ctx)
	if !ok {
		return "", apperror.ErrForbidden
	}

	var no string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		no, err = nextInvoiceNoTx(ctx, tx, businessID, date)
		return err
	})
	return no, err
}

func (r *invoiceRepository) AddPayment(ctx context.Context, payment *entity.Payment, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return updateAggregatesTx(tx, invoice)
	})
}

func (r *invoiceRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND invoice_id = ?", paymentID, invoice.ID).
			Delete(&entity.Payment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewNotFoundError("Payment")
		}
		return updateAggregatesTx(tx, invoice)
	})
}

func (r *invoiceRepository) UpdateAggregates(ctx context.Context, invoice *entity.Invoice) error {
	return updateAggregatesTx(r.db.WithContext(ctx), invoice)
}

// updateAggregatesTx writes only the derived aggregate columns
func updateAggregatesTx(tx *gorm.DB, invoice *entity.Invoice) error {
	return tx.Model(&entity.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"subtotal_taxable": invoice.SubtotalTaxable,
			"subtotal_exempt":  invoice.SubtotalExempt,
			"cgst_total":       invoice.CGSTTotal,
			"sgst_total":       invoice.SGSTTotal,
			"tax_total":        invoice.TaxTotal,
			"total":            invoice.Total,
			"amount_paid":      invoice.AmountPaid,
			"status":           invoice.Status,
		}).Error
}
